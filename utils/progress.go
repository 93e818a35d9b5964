package utils

// Progress receives advisory completion reports from long running loops, it never alters control flow
type Progress func(done, total int)

// Report calls p when it is set
func (p Progress) Report(done, total int) {
	if p != nil {
		p(done, total)
	}
}

// LogProgress reports through a named logger at debug level
func LogProgress(name string) Progress {
	log := NamedLogger(name)
	return func(done, total int) {
		log.Debugf("progress %d/%d", done, total)
	}
}
