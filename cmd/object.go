/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gorwg/BEM/rwg"
	"github.com/notargets/gorwg/InputParameters"
	"github.com/notargets/gorwg/geometry3D"
	"github.com/notargets/gorwg/utils"
)

type ModelRWG struct {
	InputFile      string // YAML run description
	GeometryFile   string // File of OBJECT ... ENDOBJECT sections
	MeshFile       string // Single mesh, used when neither of the above is given
	Label          string
	Material       string
	Transform      string
	ParallelDegree int
	Overlap        bool
	NearestTo      []float64
	Profile        bool
}

// ObjectCmd represents the object command
var ObjectCmd = &cobra.Command{
	Use:   "object",
	Short: "Build RWG objects from surface meshes and report their structure",
	Long: `
Builds one or more RWG objects from a mesh file, an OBJECT section file or a
YAML run description, optionally transforms them and assembles their overlap
matrices.

gorwg object -F plate.msh -t "ROTATED 30 ABOUT 0 0 1" --overlap`,
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		mr := &ModelRWG{}
		mr.InputFile, _ = cmd.Flags().GetString("inputConditionsFile")
		mr.GeometryFile, _ = cmd.Flags().GetString("geometryFile")
		mr.MeshFile, _ = cmd.Flags().GetString("meshFile")
		mr.Label, _ = cmd.Flags().GetString("label")
		mr.Material, _ = cmd.Flags().GetString("material")
		mr.Transform, _ = cmd.Flags().GetString("transform")
		mr.Overlap, _ = cmd.Flags().GetBool("overlap")
		mr.Profile, _ = cmd.Flags().GetBool("profile")
		mr.ParallelDegree = viper.GetInt("parallelDegree")
		nt, _ := cmd.Flags().GetString("nearestTo")
		if mr.NearestTo, err = parseCoordinates(nt); err != nil {
			log.Fatal(err)
		}
		if mr.Profile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		if err = RunRWG(mr, os.Stdout); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(ObjectCmd)
	ObjectCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file describing the objects of the run")
	ObjectCmd.Flags().StringP("geometryFile", "G", "", "file of OBJECT ... ENDOBJECT sections")
	ObjectCmd.Flags().StringP("meshFile", "F", "", "mesh file to read (.msh, .mphtxt or .neu)")
	ObjectCmd.Flags().StringP("label", "l", "", "label of the object read with --meshFile")
	ObjectCmd.Flags().StringP("material", "m", "", "material of the object read with --meshFile: PEC, VACUUM, CONST_EPS_x[_MU_y]")
	ObjectCmd.Flags().StringP("transform", "t", "", "transformation applied to every object, e.g. \"DISPLACED 0 0 1 ROTATED 30 ABOUT 0 0 1\"")
	ObjectCmd.Flags().IntP("parallelDegree", "p", runtime.NumCPU(), "number of goroutines used to assemble the overlap matrices")
	ObjectCmd.Flags().Bool("overlap", false, "assemble the overlap matrices of each object")
	ObjectCmd.Flags().String("nearestTo", "", "report the panel nearest to the point \"x,y,z\"")
	ObjectCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
	_ = viper.BindPFlag("parallelDegree", ObjectCmd.Flags().Lookup("parallelDegree"))
}

func parseCoordinates(s string) (x []float64, err error) {
	if len(strings.TrimSpace(s)) == 0 {
		return
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("point %q needs 3 comma separated coordinates", s)
	}
	x = make([]float64, 3)
	for i, p := range parts {
		if x[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
			return nil, fmt.Errorf("point %q: %w", s, err)
		}
	}
	return
}

// RunRWG loads the objects described by mr and writes a report of each to w
func RunRWG(mr *ModelRWG, w io.Writer) (err error) {
	var objs []*rwg.RWGObject
	switch {
	case len(mr.InputFile) != 0:
		var (
			data []byte
			ip   = &InputParameters.RWGParameters{}
		)
		if data, err = os.ReadFile(mr.InputFile); err != nil {
			return
		}
		if err = ip.Parse(data); err != nil {
			return fmt.Errorf("%s: %w", mr.InputFile, err)
		}
		if log.IsLevelEnabled(log.DebugLevel) {
			ip.Print()
		}
		if ip.ParallelDegree > 0 {
			mr.ParallelDegree = ip.ParallelDegree
		}
		if len(mr.Transform) == 0 {
			mr.Transform = ip.Transform
		}
		if len(mr.NearestTo) == 0 {
			mr.NearestTo = ip.NearestTo
		}
		objs, err = LoadObjects(ip)
	case len(mr.GeometryFile) != 0:
		var f *os.File
		if f, err = os.Open(mr.GeometryFile); err != nil {
			return
		}
		defer f.Close()
		objs, err = ReadGeometry(f, mr.GeometryFile)
	case len(mr.MeshFile) != 0:
		var obj *rwg.RWGObject
		obj, err = rwg.NewRWGObject(mr.MeshFile, mr.Label, mr.Material, geometry3D.Transform{})
		objs = []*rwg.RWGObject{obj}
	default:
		exampleFile := `
########################################
Title: "Coated sphere"
ParallelDegree: 4
Objects:
  - Label: Shell
    MeshFile: shell.msh
  - Label: Core
    MeshFile: core.msh
    Material: CONST_EPS_4
    Inside: Shell
    Transforms:
      - DISPLACED 0 0 0.1
########################################
`
		return fmt.Errorf("must supply a mesh file (-F), a geometry file (-G) or an input file (-I) like:%s", exampleFile)
	}
	if err != nil {
		return
	}
	log.WithField("objects", len(objs)).Debug(utils.GetMemUsage())

	if len(mr.Transform) != 0 {
		for _, obj := range objs {
			if err = obj.TransformString("%s", mr.Transform); err != nil {
				return
			}
		}
	}
	for _, obj := range objs {
		if err = report(w, obj, mr); err != nil {
			return
		}
	}
	return
}

func report(w io.Writer, obj *rwg.RWGObject, mr *ModelRWG) (err error) {
	fmt.Fprintln(w, obj)
	if len(obj.ContainingObjectLabel) != 0 {
		fmt.Fprintf(w, "\tinside %s\n", obj.ContainingObjectLabel)
	}
	if gt, ok := obj.AccumulatedTransform(); ok {
		fmt.Fprintf(w, "\ttransformed: %s\n", gt)
	}
	if len(mr.NearestTo) == 3 {
		x := r3.Vec{X: mr.NearestTo[0], Y: mr.NearestTo[1], Z: mr.NearestTo[2]}
		np, dist := obj.NearestPanel(x)
		fmt.Fprintf(w, "\tnearest panel to %v: %d at distance %g\n", mr.NearestTo, np, dist)
	}
	if mr.Overlap {
		OM, OXM, err := obj.OverlapMatrices(mr.ParallelDegree)
		if err != nil {
			return err
		}
		var trace float64
		for ne := 0; ne < obj.NumEdges; ne++ {
			trace += OM.At(ne, ne)
		}
		fmt.Fprintf(w, "\toverlap: %d non-zeros, trace %g; oTimes: %d non-zeros\n",
			OM.NNZ(), trace, OXM.NNZ())
	}
	return
}

// LoadObjects builds every object of a run description and checks that each
// INSIDE label names another object of the run
func LoadObjects(ip *InputParameters.RWGParameters) (objs []*rwg.RWGObject, err error) {
	for i, op := range ip.Objects {
		cfg := rwg.ObjectConfig{
			Label:    op.Label,
			MeshFile: op.MeshFile,
			Material: op.Material,
			Inside:   op.Inside,
		}
		if len(op.Transforms) != 0 {
			if cfg.OTGT, err = geometry3D.ParseTransform(strings.Join(op.Transforms, " ")); err != nil {
				return nil, fmt.Errorf("object %d (%s): %w", i, op.Label, err)
			}
		}
		var obj *rwg.RWGObject
		if obj, err = rwg.NewRWGObjectFromConfig(cfg); err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, op.Label, err)
		}
		objs = append(objs, obj)
	}
	return objs, checkContainment(objs)
}

// ReadGeometry reads a sequence of "OBJECT label" ... "ENDOBJECT" sections
func ReadGeometry(r io.Reader, name string) (objs []*rwg.RWGObject, err error) {
	var (
		br      = bufio.NewReader(r)
		lineNum int
	)
	for {
		line, rerr := br.ReadString('\n')
		if len(line) == 0 && rerr != nil {
			if rerr != io.EOF {
				return nil, rerr
			}
			break
		}
		lineNum++
		tokens := strings.Fields(line)
		if len(tokens) == 0 || tokens[0][0] == '#' {
			continue
		}
		if !strings.EqualFold(tokens[0], "OBJECT") {
			return nil, fmt.Errorf("%s:%d: unknown keyword %s", name, lineNum, tokens[0])
		}
		var label string
		if len(tokens) > 1 {
			label = tokens[1]
		}
		obj, linesRead, err := rwg.ReadObjectBlock(br, label)
		if err != nil {
			return nil, fmt.Errorf("%s: OBJECT %s at line %d: %w", name, label, lineNum, err)
		}
		lineNum += linesRead
		objs = append(objs, obj)
	}
	if len(objs) == 0 {
		return nil, fmt.Errorf("%s: no OBJECT sections found", name)
	}
	return objs, checkContainment(objs)
}

func checkContainment(objs []*rwg.RWGObject) error {
	labels := make(map[string]bool, len(objs))
	for _, obj := range objs {
		labels[obj.Label] = true
	}
	for _, obj := range objs {
		inside := obj.ContainingObjectLabel
		if len(inside) == 0 {
			continue
		}
		if inside == obj.Label || !labels[inside] {
			return fmt.Errorf("object %s: containing object %s not found", obj.Label, inside)
		}
	}
	return nil
}
