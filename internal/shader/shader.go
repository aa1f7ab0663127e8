// Package shader splits a combined shader file into its vertex and fragment
// sources. Sections are introduced by marker lines such as
//
//	#shader vertex
//	#shader fragment
package shader

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type Type int

const (
	None Type = iota - 1
	Vertex
	Fragment
)

func (t Type) String() string {
	switch t {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return "none"
}

const marker = "#shader"

type ProgramSource struct {
	VertexSource   string
	FragmentSource string
}

// Parse reads r line by line. Lines have no length limit. Lines seen before
// the first recognised marker belong to no section and are dropped.
func Parse(r io.Reader) (ProgramSource, error) {
	var ss [2]strings.Builder
	kind := None

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return ProgramSource{}, errors.Wrap(err, "read shader source")
		}
		if line == "" && err == io.EOF {
			break
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		if strings.Contains(line, marker) {
			if strings.Contains(line, "vertex") {
				kind = Vertex
			} else if strings.Contains(line, "fragment") {
				kind = Fragment
			}
			continue
		}

		if kind != None {
			ss[kind].WriteString(line)
			ss[kind].WriteByte('\n')
		}
		if err == io.EOF {
			break
		}
	}

	return ProgramSource{
		VertexSource:   ss[Vertex].String(),
		FragmentSource: ss[Fragment].String(),
	}, nil
}

func ParseFile(path string) (ProgramSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return ProgramSource{}, errors.Wrapf(err, "open shader %s", path)
	}
	defer f.Close()

	src, err := Parse(f)
	if err != nil {
		return ProgramSource{}, errors.Wrap(err, path)
	}
	return src, nil
}
