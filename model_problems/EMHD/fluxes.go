package EMHD

import (
	"fmt"
	"math"
	"strings"
)

type FluxType uint8

const (
	FLUX_LaxFriedrichs FluxType = iota
	FLUX_HLL
)

var (
	FluxNames = map[string]FluxType{
		"lax": FLUX_LaxFriedrichs,
		"llf": FLUX_LaxFriedrichs,
		"hll": FLUX_HLL,
	}
	FluxPrintNames = []string{"Lax Friedrichs", "HLL"}
)

func (ft FluxType) Print() (txt string) {
	txt = FluxPrintNames[ft]
	return
}

func NewFluxType(label string) (ft FluxType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("unable to use flux named %s", label)
		panic(err)
	}
	return
}

// FaceSpeeds bounds the signal speeds on a face from both sides, both
// results are non negative: cmax to the right and cmin to the left
func FaceSpeeds(cminL, cmaxL, cminR, cmaxR float64) (cmin, cmax float64) {
	cmax = math.Max(0, math.Max(cmaxL, cmaxR))
	cmin = math.Max(0, math.Max(-cminL, -cminR))
	return
}

// LaxFriedrichs is the local Lax Friedrichs flux with speed c
func LaxFriedrichs(fl, fr, ul, ur, c float64) float64 {
	return 0.5 * (fl + fr - c*(ur-ul))
}

// HLL is the two wave flux, identical states return their shared flux
func HLL(fl, fr, ul, ur, cmin, cmax float64) float64 {
	if fl == fr && ul == ur {
		return fl
	}
	return (cmax*fl + cmin*fr - cmax*cmin*(ur-ul)) / (cmax + cmin + WaveSpeedEpsilon)
}

// Combine computes the interface flux of one variable
func (ft FluxType) Combine(fl, fr, ul, ur, cmin, cmax float64) (f float64) {
	switch ft {
	case FLUX_HLL:
		f = HLL(fl, fr, ul, ur, cmin, cmax)
	default:
		f = LaxFriedrichs(fl, fr, ul, ur, math.Max(cmin, cmax))
	}
	return
}
