package material

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type MaterialType uint8

const (
	MP_PEC MaterialType = iota
	MP_VACUUM
	MP_CONSTANT
)

func (m MaterialType) String() string {
	return [...]string{"PEC", "Vacuum", "Constant"}[m]
}

// MatProp describes the electromagnetic properties of the medium an object
// is made of. Only frequency independent media are described.
type MatProp struct {
	Type    MaterialType
	name    string
	eps, mu float64
}

// NewMatProp resolves a material name. An empty name is the default material
// of an object, a perfect electrical conductor. Recognized names
// (case insensitive):
//
//	PEC
//	VACUUM
//	CONST_EPS_<eps>
//	CONST_EPS_<eps>_MU_<mu>
func NewMatProp(name string) (mp *MatProp, err error) {
	var (
		uName = strings.ToUpper(strings.TrimSpace(name))
	)
	switch {
	case uName == "" || uName == "PEC":
		return &MatProp{Type: MP_PEC, name: "PEC"}, nil
	case uName == "VACUUM":
		return &MatProp{Type: MP_VACUUM, name: "VACUUM", eps: 1, mu: 1}, nil
	case strings.HasPrefix(uName, "CONST_EPS_"):
		mp = &MatProp{Type: MP_CONSTANT, name: uName, mu: 1}
		params := strings.TrimPrefix(uName, "CONST_EPS_")
		epsStr, muStr, hasMu := strings.Cut(params, "_MU_")
		if mp.eps, err = strconv.ParseFloat(epsStr, 64); err != nil {
			return nil, fmt.Errorf("material %s: invalid permittivity %q", name, epsStr)
		}
		if hasMu {
			if mp.mu, err = strconv.ParseFloat(muStr, 64); err != nil {
				return nil, fmt.Errorf("material %s: invalid permeability %q", name, muStr)
			}
		}
		return mp, nil
	default:
		return nil, fmt.Errorf("unknown material %s", name)
	}
}

func (mp *MatProp) IsPEC() bool { return mp.Type == MP_PEC }

func (mp *MatProp) Name() string { return mp.name }

// Epsilon is the relative permittivity, +Inf for a perfect conductor
func (mp *MatProp) Epsilon() float64 {
	if mp.IsPEC() {
		return math.Inf(1)
	}
	return mp.eps
}

// Mu is the relative permeability
func (mp *MatProp) Mu() float64 {
	if mp.IsPEC() {
		return 1
	}
	return mp.mu
}

// RefractiveIndex is sqrt(eps*mu), +Inf for a perfect conductor
func (mp *MatProp) RefractiveIndex() float64 {
	return math.Sqrt(mp.Epsilon() * mp.Mu())
}
