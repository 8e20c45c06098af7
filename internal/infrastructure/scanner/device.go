// Package scanner fuente de lecturas de código de barras para la recolección.
// Un Device se adquiere con Open y se libera en todas las salidas con Session.Close;
// ScanOnce y Run envuelven ese ciclo.
package scanner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

// ErrStopped el dispositivo no está activo o se agotó la entrada.
var ErrStopped = errors.New("scanner: dispositivo detenido")

// Device lector que emite un texto decodificado por escaneo.
type Device interface {
	Start(ctx context.Context, formats []Symbology) error
	// Next bloquea hasta la siguiente lectura, la cancelación de ctx o el cierre.
	Next(ctx context.Context) ([]byte, error)
	// Clear descarta lecturas pendientes.
	Clear()
	Stop() error
}

// ── Adquisición con ámbito ────────────────────────────────────────────────────

// Session dispositivo adquirido. Close es idempotente.
type Session struct {
	dev  Device
	once sync.Once
	err  error
}

// Open valida los formatos y arranca el dispositivo.
func Open(ctx context.Context, dev Device, formats []Symbology) (*Session, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}
	if err := dev.Start(ctx, formats); err != nil {
		return nil, err
	}
	return &Session{dev: dev}, nil
}

// Read devuelve la siguiente lectura normalizada; las líneas vacías se saltan.
func (s *Session) Read(ctx context.Context) (string, error) {
	for {
		raw, err := s.dev.Next(ctx)
		if err != nil {
			return "", err
		}
		if code := Normalize(raw); code != "" {
			return code, nil
		}
	}
}

// Close detiene el dispositivo una sola vez.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.dev.Clear()
		s.err = s.dev.Stop()
	})
	return s.err
}

// ScanOnce adquiere el dispositivo, lee un código y lo libera, incluso ante error.
func ScanOnce(ctx context.Context, dev Device, formats []Symbology) (string, error) {
	s, err := Open(ctx, dev, formats)
	if err != nil {
		return "", err
	}
	defer s.Close()
	return s.Read(ctx)
}

// Run adquiere el dispositivo y llama a fn por cada lectura hasta que fn devuelva
// error, ctx se cancele o la entrada se agote (ErrStopped → nil).
func Run(ctx context.Context, dev Device, formats []Symbology, fn func(code string) error) error {
	s, err := Open(ctx, dev, formats)
	if err != nil {
		return err
	}
	defer s.Close()
	for {
		code, err := s.Read(ctx)
		if errors.Is(err, ErrStopped) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(code); err != nil {
			return err
		}
	}
}

// ── Lector tipo teclado ───────────────────────────────────────────────────────

// WedgeDevice lector que escribe cada código seguido de Enter sobre un io.Reader
// (stdin del terminal o un puerto serie). Un solo goroutine lee r durante toda la
// vida del dispositivo; Start y Stop solo abren y cierran la entrega de líneas.
type WedgeDevice struct {
	r     io.Reader
	once  sync.Once
	lines chan []byte

	mu   sync.Mutex
	stop chan struct{}
}

// NewWedgeDevice construye el dispositivo sobre r.
func NewWedgeDevice(r io.Reader) *WedgeDevice {
	return &WedgeDevice{r: r}
}

// Start abre la entrega de líneas. Un segundo Start sin Stop es un no-op.
func (d *WedgeDevice) Start(_ context.Context, _ []Symbology) error {
	d.once.Do(func() {
		d.lines = make(chan []byte, 16)
		go d.pump()
	})
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == nil {
		d.stop = make(chan struct{})
	}
	return nil
}

func (d *WedgeDevice) pump() {
	defer close(d.lines)
	sc := bufio.NewScanner(d.r)
	for sc.Scan() {
		d.lines <- append([]byte(nil), sc.Bytes()...)
	}
}

func (d *WedgeDevice) channels() (chan []byte, chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == nil {
		return nil, nil
	}
	return d.lines, d.stop
}

// Next devuelve la siguiente línea.
func (d *WedgeDevice) Next(ctx context.Context) ([]byte, error) {
	lines, stop := d.channels()
	if lines == nil {
		return nil, ErrStopped
	}
	select {
	case b, ok := <-lines:
		if !ok {
			return nil, ErrStopped
		}
		return b, nil
	case <-stop:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Clear descarta las líneas ya leídas y no consumidas.
func (d *WedgeDevice) Clear() {
	lines, _ := d.channels()
	if lines == nil {
		return
	}
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Stop detiene el dispositivo.
func (d *WedgeDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
	return nil
}
