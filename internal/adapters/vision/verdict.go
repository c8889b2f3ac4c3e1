package vision

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"medication-adherence/internal/ports/verification"
)

// Prompt es la instrucción común a todos los modelos de visión.
func Prompt(expectedLabel string) string {
	return fmt.Sprintf(`You are a medication verification assistant. Analyze this image to verify if the person is taking their medication correctly.

Expected medication: %s

Please verify:
1. Is there a pill/medication visible in the image?
2. Is the person holding it (hand visible)?
3. Does it appear to be the correct medication?

Respond in JSON format:
{
  "isValid": true/false,
  "confidence": 0-100,
  "detected": ["pill", "hand", "water"],
  "reasoning": "brief explanation"
}`, expectedLabel)
}

type modelVerdict struct {
	IsValid    bool     `json:"isValid"`
	Confidence float64  `json:"confidence"`
	Detected   []string `json:"detected"`
	Reasoning  string   `json:"reasoning"`
}

// ParseVerdict extrae el primer objeto JSON del texto del modelo. Una respuesta
// ilegible es un rechazo con confianza 0, nunca un error.
func ParseVerdict(text, model string) verification.Verdict {
	rejected := verification.Verdict{
		Accepted:   false,
		Confidence: 0,
		Tags:       []string{},
		Rationale:  "Failed to parse AI response",
		Model:      model,
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return rejected
	}

	var mv modelVerdict
	if err := json.Unmarshal([]byte(text[start:end+1]), &mv); err != nil {
		return rejected
	}

	tags := make([]string, 0, len(mv.Detected))
	for _, t := range mv.Detected {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	reason := strings.TrimSpace(mv.Reasoning)
	if reason == "" {
		reason = "No reasoning provided"
	}

	// se acota en float antes de convertir: int() de un valor fuera de rango no está definido
	conf := 0
	if !math.IsNaN(mv.Confidence) {
		conf = int(math.Round(math.Max(0, math.Min(100, mv.Confidence))))
	}

	return verification.Verdict{
		Accepted:   mv.IsValid,
		Confidence: conf,
		Tags:       tags,
		Rationale:  reason,
		Model:      model,
	}
}

// mediaType normaliza el content type que se declara al modelo.
func mediaType(image []byte) string {
	ct := http.DetectContentType(image)
	switch ct {
	case "image/png", "image/gif", "image/webp":
		return ct
	default:
		return "image/jpeg"
	}
}
