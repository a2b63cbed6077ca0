package services

import "sync"

// PrintModeLease holds the document-wide print presentation mode.
// Release is safe to call any number of times, from any dismissal path.
type PrintModeLease struct {
	host Host
	once sync.Once
}

// AcquirePrintMode switches the host into print presentation mode
func AcquirePrintMode(host Host) *PrintModeLease {
	host.SetPrintMode(true)
	return &PrintModeLease{host: host}
}

// Release leaves print presentation mode
func (l *PrintModeLease) Release() {
	if l == nil {
		return
	}
	l.once.Do(func() {
		l.host.SetPrintMode(false)
	})
}
