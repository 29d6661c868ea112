package mesh

import (
	"fmt"
	"strconv"
	"strings"
)

// splitComment separates "value # comment" into its trimmed parts
func splitComment(line string) (value, comment string) {
	value, comment, _ = strings.Cut(line, "#")
	return strings.TrimSpace(value), strings.ToLower(strings.TrimSpace(comment))
}

// readComsol reads the "tri" elements of a COMSOL .mphtxt text mesh
func readComsol(ls *lineScanner) (*SurfaceMesh, error) {
	var (
		sm          = NewSurfaceMesh()
		numPoints   = -1
		lowestIndex int
		typeName    string
		numPerElem  int
		numElements int
		err         error
	)
	for ls.Scan() {
		value, comment := splitComment(ls.Text())
		switch {
		case comment == "number of mesh points":
			if numPoints, err = strconv.Atoi(value); err != nil {
				return nil, fmt.Errorf("invalid number of mesh points %q", value)
			}
		case comment == "lowest mesh point index":
			if lowestIndex, err = strconv.Atoi(value); err != nil {
				return nil, fmt.Errorf("invalid lowest mesh point index %q", value)
			}
		case comment == "mesh point coordinates" && value == "":
			if numPoints < 0 {
				return nil, fmt.Errorf("mesh point coordinates precede the number of mesh points")
			}
			for i := 0; i < numPoints; i++ {
				if !ls.nextNonBlank() {
					return nil, fmt.Errorf("unexpected EOF reading mesh points")
				}
				parts := strings.Fields(ls.Text())
				if len(parts) < 3 {
					return nil, fmt.Errorf("mesh point %d: expected 3 coordinates", i)
				}
				x, err := parseVec(parts)
				if err != nil {
					return nil, err
				}
				// Points are numbered from the lowest index, elements use those numbers
				if err = sm.AddNode(lowestIndex+i, x); err != nil {
					return nil, err
				}
			}
		case comment == "type name":
			// "3 tri # type name": the first field is the name length
			fields := strings.Fields(value)
			typeName = ""
			if len(fields) > 0 {
				typeName = fields[len(fields)-1]
			}
		case comment == "number of vertices per element" || comment == "number of nodes per element":
			if numPerElem, err = strconv.Atoi(value); err != nil {
				return nil, fmt.Errorf("invalid nodes per element %q", value)
			}
		case comment == "number of elements":
			if numElements, err = strconv.Atoi(value); err != nil {
				return nil, fmt.Errorf("invalid number of elements %q", value)
			}
		case comment == "elements" && value == "":
			if typeName != "tri" {
				continue
			}
			if numPerElem < 3 {
				return nil, fmt.Errorf("tri elements with %d nodes", numPerElem)
			}
			for i := 0; i < numElements; i++ {
				if !ls.nextNonBlank() {
					return nil, fmt.Errorf("unexpected EOF reading tri elements")
				}
				ints, err := parseInts(strings.Fields(ls.Text()))
				if err != nil {
					return nil, err
				}
				if len(ints) < 3 {
					return nil, fmt.Errorf("tri element %d: expected 3 nodes", i)
				}
				if err = sm.AddTriangle([3]int{ints[0], ints[1], ints[2]}, 0); err != nil {
					return nil, err
				}
			}
		}
	}
	return sm, nil
}
