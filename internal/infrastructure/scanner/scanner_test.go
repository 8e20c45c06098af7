package scanner_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/depo-terminal/internal/domain"
	"github.com/jhoicas/depo-terminal/internal/infrastructure/scanner"
)

// fakeDevice registra Start/Stop y devuelve lecturas predefinidas.
type fakeDevice struct {
	reads    []string
	nextErr  error
	startErr error
	started  int
	stopped  int
	cleared  int
}

func (f *fakeDevice) Start(context.Context, []scanner.Symbology) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started++
	return nil
}

func (f *fakeDevice) Next(context.Context) ([]byte, error) {
	if f.nextErr != nil {
		return nil, f.nextErr
	}
	if len(f.reads) == 0 {
		return nil, scanner.ErrStopped
	}
	r := f.reads[0]
	f.reads = f.reads[1:]
	return []byte(r), nil
}

func (f *fakeDevice) Clear()      { f.cleared++ }
func (f *fakeDevice) Stop() error { f.stopped++; return nil }

// ─── Normalize / ParseLine ────────────────────────────────────────────────────

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abc-i1", scanner.Normalize([]byte("  abc-i1\r")), "no cambia mayúsculas")
	assert.Equal(t, "item-01", scanner.Normalize([]byte("item-01")), "la i ASCII no pasa a İ")
	assert.Equal(t, "kız", scanner.Normalize([]byte{'k', 0xFD, 'z'}), "Latin-5 ı decodificada")
	assert.Equal(t, "869", scanner.Normalize([]byte("8\x006\t9")))
	assert.Empty(t, scanner.Normalize([]byte(" \r\n")))
}

func TestParseLine(t *testing.T) {
	r, err := scanner.ParseLine("3*A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", r.Barcode)

	r, err = scanner.ParseLine("2*item-01")
	require.NoError(t, err)
	assert.Equal(t, "item-01", r.Barcode)
	assert.True(t, r.Quantity.Equal(decimal.NewFromInt(3)))

	r, err = scanner.ParseLine("2,5*X9")
	require.NoError(t, err)
	assert.Equal(t, "2.5", r.Quantity.String())

	r, err = scanner.ParseLine("8690001")
	require.NoError(t, err)
	assert.Equal(t, "8690001", r.Barcode)
	assert.True(t, r.Quantity.Equal(decimal.NewFromInt(1)), "sin cantidad vale 1")

	_, err = scanner.ParseLine("0*A1")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = scanner.ParseLine("3*  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Simbologías ──────────────────────────────────────────────────────────────

func TestValidateFormats(t *testing.T) {
	assert.NoError(t, scanner.ValidateFormats(scanner.Linear))
	assert.Error(t, scanner.ValidateFormats(nil))
	assert.Error(t, scanner.ValidateFormats([]scanner.Symbology{scanner.EAN13, scanner.QRCode}), "2D no permitido")
}

// ─── Adquisición con ámbito ───────────────────────────────────────────────────

func TestScanOnce_LiberaElDispositivo(t *testing.T) {
	dev := &fakeDevice{reads: []string{"", "A1"}}
	code, err := scanner.ScanOnce(context.Background(), dev, scanner.Linear)
	require.NoError(t, err)
	assert.Equal(t, "A1", code, "las lecturas vacías se saltan")
	assert.Equal(t, 1, dev.started)
	assert.Equal(t, 1, dev.stopped)
}

func TestScanOnce_LiberaAnteError(t *testing.T) {
	boom := errors.New("cámara")
	dev := &fakeDevice{nextErr: boom}
	_, err := scanner.ScanOnce(context.Background(), dev, scanner.Linear)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, dev.stopped)
}

func TestOpen_FormatosInvalidosNoArranca(t *testing.T) {
	dev := &fakeDevice{}
	_, err := scanner.Open(context.Background(), dev, []scanner.Symbology{scanner.DataMatrix})
	assert.Error(t, err)
	assert.Zero(t, dev.started)
	assert.Zero(t, dev.stopped)
}

func TestSession_CloseIdempotente(t *testing.T) {
	dev := &fakeDevice{}
	s, err := scanner.Open(context.Background(), dev, scanner.Linear)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, dev.stopped)
}

func TestRun_ErrorDelCallbackDetiene(t *testing.T) {
	dev := &fakeDevice{reads: []string{"A", "B", "C"}}
	stop := errors.New("fin")
	var seen []string
	err := scanner.Run(context.Background(), dev, scanner.Linear, func(code string) error {
		seen = append(seen, code)
		if code == "B" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"A", "B"}, seen)
	assert.Equal(t, 1, dev.stopped)
}

// ─── WedgeDevice ──────────────────────────────────────────────────────────────

func TestWedgeDevice_LeeHastaEOF(t *testing.T) {
	dev := scanner.NewWedgeDevice(strings.NewReader("a1\r\n\n2*B2\n"))
	var seen []string
	err := scanner.Run(context.Background(), dev, scanner.Linear, func(code string) error {
		seen = append(seen, code)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "2*B2"}, seen)
}

func TestWedgeDevice_CancelacionDelContexto(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	dev := scanner.NewWedgeDevice(r)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := scanner.ScanOnce(ctx, dev, scanner.Linear)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = dev.Next(context.Background())
	assert.ErrorIs(t, err, scanner.ErrStopped, "tras ScanOnce el dispositivo queda detenido")
}

func TestWedgeDevice_ReiniciarNoDuplicaLaLectura(t *testing.T) {
	dev := scanner.NewWedgeDevice(strings.NewReader("A\nB\nC\n"))
	ctx := context.Background()

	require.NoError(t, dev.Start(ctx, scanner.Linear))
	b, err := dev.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", string(b))
	require.NoError(t, dev.Stop())

	_, err = dev.Next(ctx)
	assert.ErrorIs(t, err, scanner.ErrStopped)

	require.NoError(t, dev.Start(ctx, scanner.Linear))
	var rest []string
	for {
		b, err := dev.Next(ctx)
		if errors.Is(err, scanner.ErrStopped) {
			break
		}
		require.NoError(t, err)
		rest = append(rest, string(b))
	}
	assert.Equal(t, []string{"B", "C"}, rest, "una sola lectura de la entrada, en orden")
	require.NoError(t, dev.Stop())
}
