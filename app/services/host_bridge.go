package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Frontend events emitted by the invoice preview
const (
	EventInvoiceCopied    = "invoice:copied"
	EventInvoicePrintMode = "invoice:print-mode"
	EventInvoicePrintArm  = "invoice:print-armed"
)

// ErrHostNotReady is returned before the window context is available
var ErrHostNotReady = errors.New("window not ready")

// Host is the set of desktop capabilities the invoice preview delegates to
type Host interface {
	ClipboardSetText(text string) error
	// SaveFile asks the user where to save data; an empty path means the dialog was cancelled
	SaveFile(defaultName, title string, data []byte) (string, error)
	Print() error
	Emit(event string, data ...interface{})
	SetPrintMode(on bool)
	// Context is cancelled when the window shuts down
	Context() context.Context
}

// WailsHost implements Host on top of the Wails runtime
type WailsHost struct {
	mu  sync.RWMutex
	ctx context.Context
}

// NewWailsHost creates a host bridge; SetContext must be called from OnStartup
func NewWailsHost() *WailsHost {
	return &WailsHost{}
}

// SetContext stores the runtime context handed to OnStartup
func (h *WailsHost) SetContext(ctx context.Context) {
	h.mu.Lock()
	h.ctx = ctx
	h.mu.Unlock()
}

func (h *WailsHost) context() (context.Context, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.ctx == nil {
		return nil, ErrHostNotReady
	}
	return h.ctx, nil
}

// Context returns the runtime context, or a background context before startup
func (h *WailsHost) Context() context.Context {
	ctx, err := h.context()
	if err != nil {
		return context.Background()
	}
	return ctx
}

// ClipboardSetText writes text to the system clipboard
func (h *WailsHost) ClipboardSetText(text string) error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	return runtime.ClipboardSetText(ctx, text)
}

// SaveFile shows the native save dialog and writes data to the chosen path
func (h *WailsHost) SaveFile(defaultName, title string, data []byte) (string, error) {
	ctx, err := h.context()
	if err != nil {
		return "", err
	}

	path, err := runtime.SaveFileDialog(ctx, runtime.SaveDialogOptions{
		DefaultFilename:      defaultName,
		Title:                title,
		CanCreateDirectories: true,
		Filters: []runtime.FileFilter{
			{DisplayName: "Excel (*.xlsx)", Pattern: "*.xlsx"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("save dialog failed: %w", err)
	}
	if path == "" {
		return "", nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Print opens the native print dialog for the window
func (h *WailsHost) Print() error {
	ctx, err := h.context()
	if err != nil {
		return err
	}
	runtime.WindowPrint(ctx)
	return nil
}

// Emit sends an event to the frontend; dropped before startup
func (h *WailsHost) Emit(event string, data ...interface{}) {
	ctx, err := h.context()
	if err != nil {
		return
	}
	runtime.EventsEmit(ctx, event, data...)
}

// SetPrintMode toggles the print-mode class on the document body
func (h *WailsHost) SetPrintMode(on bool) {
	ctx, err := h.context()
	if err != nil {
		return
	}
	op := "remove"
	if on {
		op = "add"
	}
	runtime.WindowExecJS(ctx, fmt.Sprintf("document.body.classList.%s('print-mode')", op))
	runtime.EventsEmit(ctx, EventInvoicePrintMode, on)
}
