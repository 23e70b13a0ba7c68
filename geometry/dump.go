package geometry

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"

	"github.com/notargets/emhd/types"
)

type PointDump struct {
	Index             [3]int                    `json:"index"`
	X                 [NDIM]float64             `json:"x"`
	GCov              [NDIM][NDIM]float64       `json:"gCov"`
	GCon              [NDIM][NDIM]float64       `json:"gCon"`
	GammaDownDownDown [NDIM][NDIM][NDIM]float64 `json:"gammaDownDownDown"`
}

type Dump struct {
	Spacetime string      `json:"spacetime"`
	Dim       int         `json:"dim"`
	N         [3]int      `json:"n"`
	DX        [3]float64  `json:"dx"`
	Points    []PointDump `json:"points"`
}

// NewDump collects the metric and connection at every interior cell center
func (geom *Geometry) NewDump() (dp *Dump) {
	var (
		g  = geom.template
		ld = geom.At(types.CENTER)
	)
	dp = &Dump{
		Spacetime: geom.Spacetime.Name(),
		Dim:       g.Dim,
		N:         g.N,
		DX:        geom.Domain.DX,
	}
	g.ForInterior(0, g.Size(), func(ind int) {
		var pd PointDump
		pd.Index[0], pd.Index[1], pd.Index[2] = g.Coords(ind)
		for mu := 0; mu < NDIM; mu++ {
			pd.X[mu] = ld.XCoords[mu][ind]
			for nu := 0; nu < NDIM; nu++ {
				pd.GCov[mu][nu] = ld.Metric.GCov[mu][nu][ind]
				pd.GCon[mu][nu] = ld.Metric.GCon[mu][nu][ind]
			}
		}
		pd.GammaDownDownDown = GammaDownDownDown(geom.Spacetime, pd.X)
		dp.Points = append(dp.Points, pd)
	})
	return
}

// Dump writes the cell center geometry as YAML
func (geom *Geometry) Dump(w io.Writer) (err error) {
	var (
		data []byte
	)
	if data, err = yaml.Marshal(geom.NewDump()); err != nil {
		return fmt.Errorf("marshal geometry: %w", err)
	}
	_, err = w.Write(data)
	return
}
