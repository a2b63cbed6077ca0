package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintModeLease(t *testing.T) {
	host := newFakeHost()

	lease := AcquirePrintMode(host)
	assert.True(t, host.inPrintMode())

	lease.Release()
	lease.Release()
	assert.False(t, host.inPrintMode())
	assert.Equal(t, []bool{true, false}, host.printToggles)
}

func TestPrintModeLeaseNilRelease(t *testing.T) {
	var lease *PrintModeLease
	assert.NotPanics(t, lease.Release)
}
