package verification

import "context"

// Verdict es la respuesta del oráculo para una foto de toma.
type Verdict struct {
	Accepted   bool
	Confidence int // 0..100
	Tags       []string
	Rationale  string
	Model      string // versión del oráculo que clasificó
}

// Oracle clasifica una imagen contra la etiqueta esperada (nombre del medicamento).
// Las respuestas malformadas se reportan como rechazo con confianza 0, no como error;
// error queda para fallas de transporte/upstream.
type Oracle interface {
	Classify(ctx context.Context, image []byte, expectedLabel string) (Verdict, error)
}

// ClampConfidence fuerza la confianza al rango 0..100.
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
