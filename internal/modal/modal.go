// Package modal presents one export result as a titled panel with Copy and
// Download actions.
package modal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// ErrDownloadDisabled is returned by Download when the modal does not allow downloads.
var ErrDownloadDisabled = errors.New("modal: download is disabled for this export")

const (
	// DefaultFilename is the name of downloaded files.
	DefaultFilename = "wowsims.json"
	// DefaultCopiedFeedback is how long the copy button reads "Copied".
	DefaultCopiedFeedback = 1500 * time.Millisecond

	copyLabel   = "Copy to Clipboard"
	copiedLabel = "Copied"
)

// CopyResult describes how Copy delivered the text.
type CopyResult struct {
	// Fallback is set when the text was written to the output writer instead of the clipboard.
	Fallback bool
}

// Option configures a Modal.
type Option func(*Modal)

// WithClipboard sets the Copy destination. The default is SystemClipboard.
func WithClipboard(c Clipboard) Option { return func(m *Modal) { m.clipboard = c } }

// WithLogger sets the logger. The default discards.
func WithLogger(l *zap.Logger) Option { return func(m *Modal) { m.logger = l } }

// WithDownloadDir sets the directory Download writes to. The default is the working directory.
func WithDownloadDir(dir string) Option { return func(m *Modal) { m.dir = dir } }

// WithFilename sets the downloaded file name. The default is DefaultFilename.
func WithFilename(name string) Option { return func(m *Modal) { m.filename = name } }

// WithOutput sets where the Copy fallback writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option { return func(m *Modal) { m.out = w } }

// WithCopiedFeedback sets how long the copy button reads "Copied".
func WithCopiedFeedback(d time.Duration) Option { return func(m *Modal) { m.feedback = d } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(m *Modal) { m.now = now } }

// Modal is a titled export panel. The text comes from the producer and is captured by Open.
//
// Modal is safe for concurrent use.
type Modal struct {
	Title         string
	AllowDownload bool

	produce   func() (string, error)
	clipboard Clipboard
	logger    *zap.Logger
	out       io.Writer
	dir       string
	filename  string
	feedback  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	opened   bool
	text     string
	copiedAt time.Time
}

// New creates a Modal.
//
// Precondition: produce must be non-nil.
// Postcondition: Returns a closed Modal; Open must be called before the text is available.
func New(title string, allowDownload bool, produce func() (string, error), opts ...Option) *Modal {
	if produce == nil {
		panic("modal.New: precondition violated: produce must be non-nil")
	}
	m := &Modal{
		Title:         title,
		AllowDownload: allowDownload,
		produce:       produce,
		clipboard:     SystemClipboard{},
		logger:        zap.NewNop(),
		out:           os.Stdout,
		dir:           ".",
		filename:      DefaultFilename,
		feedback:      DefaultCopiedFeedback,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open runs the producer and captures its text. Each call re-runs the producer.
//
// Postcondition: On success Text returns the produced text; on error the modal stays closed.
func (m *Modal) Open() error {
	text, err := m.produce()
	if err != nil {
		return fmt.Errorf("modal %q: producing text: %w", m.Title, err)
	}
	m.mu.Lock()
	m.text = text
	m.opened = true
	m.copiedAt = time.Time{}
	m.mu.Unlock()
	return nil
}

// Text returns the captured text, or "" before Open.
func (m *Modal) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *Modal) openedText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.opened {
		return "", fmt.Errorf("modal %q: not open", m.Title)
	}
	return m.text, nil
}

// Copy places the text on the clipboard. When the clipboard is unsupported or
// rejects the text, the raw text is written to the output writer instead.
//
// Precondition: Open must have succeeded.
// Postcondition: On a clipboard write the button reads "Copied" for the feedback duration.
func (m *Modal) Copy(ctx context.Context) (CopyResult, error) {
	if err := ctx.Err(); err != nil {
		return CopyResult{}, err
	}
	text, err := m.openedText()
	if err != nil {
		return CopyResult{}, err
	}

	if m.clipboard.Unsupported() {
		m.logger.Warn("clipboard unsupported, displaying export", zap.String("title", m.Title))
		return m.fallback(text)
	}
	if err := m.clipboard.WriteAll(text); err != nil {
		m.logger.Warn("clipboard write failed, displaying export",
			zap.String("title", m.Title),
			zap.Error(err),
		)
		return m.fallback(text)
	}

	m.mu.Lock()
	m.copiedAt = m.now()
	m.mu.Unlock()
	m.logger.Debug("export copied", zap.String("title", m.Title), zap.Int("bytes", len(text)))
	return CopyResult{}, nil
}

func (m *Modal) fallback(text string) (CopyResult, error) {
	if _, err := fmt.Fprintln(m.out, text); err != nil {
		return CopyResult{}, fmt.Errorf("modal %q: displaying text: %w", m.Title, err)
	}
	return CopyResult{Fallback: true}, nil
}

// Feedback returns the copy button label at now.
func (m *Modal) Feedback(now time.Time) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.copiedAt.IsZero() && now.Before(m.copiedAt.Add(m.feedback)) {
		return copiedLabel
	}
	return copyLabel
}

// Download writes the text to the download file.
//
// Precondition: Open must have succeeded.
// Postcondition: Returns the written path, or ErrDownloadDisabled when AllowDownload is false.
func (m *Modal) Download() (string, error) {
	if !m.AllowDownload {
		return "", ErrDownloadDisabled
	}
	text, err := m.openedText()
	if err != nil {
		return "", err
	}
	path := filepath.Join(m.dir, m.filename)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("modal %q: writing %s: %w", m.Title, path, err)
	}
	m.logger.Info("export downloaded",
		zap.String("title", m.Title),
		zap.String("path", path),
	)
	return path, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9ca24")).MarginBottom(1)
	bodyStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#bababa")).Padding(0, 1)
	buttonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f")).MarginRight(2)
)

// Render draws the panel: the title, the text in a bordered box, and the action buttons.
// The Download button is shown only when downloads are allowed.
func (m *Modal) Render() string {
	buttons := []string{buttonStyle.Render("[" + m.Feedback(m.now()) + "]")}
	if m.AllowDownload {
		buttons = append(buttons, buttonStyle.Render("[Download]"))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.Title),
		bodyStyle.Render(m.Text()),
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
	)
}
