// Package report turns a monthly summary into a shareable document.
package report

import (
	"errors"
	"fmt"
	"time"

	"fabrica-backend/internal/ledger"
)

var ErrRenderFailure = errors.New("render failed")

// Tone selects the color a row is painted with.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneInfo     Tone = "info"
	ToneWarning  Tone = "warning"
	ToneAccent   Tone = "accent"
)

type RGB struct{ R, G, B int }

var toneColors = map[Tone]RGB{
	TonePositive: {40, 167, 69},
	ToneNegative: {220, 53, 69},
	ToneInfo:     {0, 123, 255},
	ToneWarning:  {255, 193, 7},
	ToneAccent:   {111, 66, 193},
}

// Color returns the fill color for t, info blue when unknown.
func (t Tone) Color() RGB {
	if c, ok := toneColors[t]; ok {
		return c
	}
	return toneColors[ToneInfo]
}

// Hex is the color as RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Tone  Tone   `json:"tone"`
}

type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

type Document struct {
	AppTitle    string        `json:"app_title"`
	Title       string        `json:"title"`
	Period      ledger.Period `json:"period"`
	GeneratedAt time.Time     `json:"generated_at"`
	Sections    []Section     `json:"sections"`
	Notes       []string      `json:"notes"`
}
