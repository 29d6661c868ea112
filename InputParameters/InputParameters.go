package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// ObjectParameters describes one object of a run, the YAML equivalent of an
// OBJECT ... ENDOBJECT section
type ObjectParameters struct {
	Label      string   `yaml:"Label"`
	MeshFile   string   `yaml:"MeshFile"`
	Material   string   `yaml:"Material"`
	Inside     string   `yaml:"Inside"`
	Transforms []string `yaml:"Transforms"` // One-time transformation clauses, applied in order
}

// Parameters obtained from the YAML input file
type RWGParameters struct {
	Title          string             `yaml:"Title"`
	Objects        []ObjectParameters `yaml:"Objects"`
	Transform      string             `yaml:"Transform"` // Applied to every object after loading
	ParallelDegree int                `yaml:"ParallelDegree"`
	NearestTo      []float64          `yaml:"NearestTo"` // Optional probe point for the panel index
}

func (ip *RWGParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if len(ip.Objects) == 0 {
		return fmt.Errorf("input must list at least one object under Objects")
	}
	for i, obj := range ip.Objects {
		if len(obj.MeshFile) == 0 {
			return fmt.Errorf("object %d (%s) has no MeshFile", i, obj.Label)
		}
	}
	if len(ip.NearestTo) != 0 && len(ip.NearestTo) != 3 {
		return fmt.Errorf("NearestTo needs 3 coordinates, got %d", len(ip.NearestTo))
	}
	return
}

func (ip *RWGParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t\t= Parallel Degree\n", ip.ParallelDegree)
	if len(ip.Transform) != 0 {
		fmt.Printf("[%s]\t= Transform\n", ip.Transform)
	}
	for _, obj := range ip.Objects {
		fmt.Printf("Object[%s] = %s, Material: %s", obj.Label, obj.MeshFile, obj.Material)
		if len(obj.Inside) != 0 {
			fmt.Printf(", Inside: %s", obj.Inside)
		}
		fmt.Printf("\n")
		for _, tr := range obj.Transforms {
			fmt.Printf("\t%s\n", tr)
		}
	}
	if len(ip.NearestTo) == 3 {
		fmt.Printf("%v\t= NearestTo\n", ip.NearestTo)
	}
}
