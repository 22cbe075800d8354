package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the indexed mesh loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle)
}

// Triangles expands the indexed mesh into a flat triangle soup, three vertices per triangle
func (d *PLYData) Triangles() []core.Vec3 {
	soup := make([]core.Vec3, 0, len(d.Faces))
	for _, index := range d.Faces {
		soup = append(soup, d.Vertices[index])
	}
	return soup
}

// LoadPLY loads a PLY file, fan-triangulating polygons with more than three vertices
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	return ReadPLY(bufio.NewReaderSize(file, 1024*1024))
}

// ReadPLY parses PLY data from r
func ReadPLY(r *bufio.Reader) (*PLYData, error) {
	header, err := parsePLYHeader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var source plyValueReader
	switch header.Format {
	case "binary_little_endian":
		source = &binaryValueReader{r: r, order: binary.LittleEndian}
	case "binary_big_endian":
		source = &binaryValueReader{r: r, order: binary.BigEndian}
	case "ascii":
		source = &asciiValueReader{r: r}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	data, err := readPLYBody(source, header)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return data, nil
}

// parsePLYHeader consumes the header up to and including end_header
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string

	for lineNumber := 1; ; lineNumber++ {
		raw, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended without end_header: %w", err)
		}
		line := strings.TrimSpace(raw)

		if lineNumber == 1 {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic, got %q", line)
			}
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}

			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				return nil, fmt.Errorf("unsupported element %q", currentElement)
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}

			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			default:
				return nil, fmt.Errorf("property %q outside of an element", prop.Name)
			}
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// plyValueReader yields scalar values in file order regardless of encoding
type plyValueReader interface {
	next(dataType string) (float64, error)
}

type binaryValueReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryValueReader) next(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	data := b.buf[:size]
	if _, err := io.ReadFull(b.r, data); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "char", "int8":
		return float64(int8(data[0])), nil
	default: // uchar, uint8
		return float64(data[0]), nil
	}
}

type asciiValueReader struct {
	r      *bufio.Reader
	fields []string
}

func (a *asciiValueReader) next(dataType string) (float64, error) {
	for len(a.fields) == 0 {
		line, err := a.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return 0, err
		}
		a.fields = strings.Fields(line)
	}

	token := a.fields[0]
	a.fields = a.fields[1:]
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, token)
	}
	return value, nil
}

// readPLYBody reads vertex positions and face index lists
func readPLYBody(source plyValueReader, header *PLYHeader) (*PLYData, error) {
	vertices := make([]core.Vec3, 0, header.VertexCount)
	faces := make([]int, 0, header.FaceCount*3) // Assuming triangular faces

	for i := 0; i < header.VertexCount; i++ {
		var position [3]float64
		for _, prop := range header.VertexProps {
			if prop.IsList {
				if _, err := readList(source, prop); err != nil {
					return nil, fmt.Errorf("failed to skip vertex list %s at vertex %d: %w", prop.Name, i, err)
				}
				continue
			}

			value, err := source.next(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("failed to read vertex %d property %s: %w", i, prop.Name, err)
			}
			switch prop.Name {
			case "x":
				position[0] = value
			case "y":
				position[1] = value
			case "z":
				position[2] = value
			}
		}
		vertices = append(vertices, core.NewVec3(position[0], position[1], position[2]))
	}

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := source.next(prop.Type); err != nil {
					return nil, fmt.Errorf("failed to skip face property %s at face %d: %w", prop.Name, i, err)
				}
				continue
			}

			indices, err := readList(source, prop)
			if err != nil {
				return nil, fmt.Errorf("failed to read face %d: %w", i, err)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(indices) < 3 {
				return nil, fmt.Errorf("face %d has only %d vertices", i, len(indices))
			}

			for _, index := range indices {
				if index < 0 || index >= header.VertexCount {
					return nil, fmt.Errorf("face %d references vertex %d of %d", i, index, header.VertexCount)
				}
			}

			// Fan triangulation around the first vertex
			for k := 1; k+1 < len(indices); k++ {
				faces = append(faces, indices[0], indices[k], indices[k+1])
			}
		}
	}

	return &PLYData{Vertices: vertices, Faces: faces}, nil
}

// readList reads a count-prefixed list property
func readList(source plyValueReader, prop PLYProperty) ([]int, error) {
	count, err := source.next(prop.ListType)
	if err != nil {
		return nil, fmt.Errorf("failed to read list count (%s): %w", prop.ListType, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative list count %g", count)
	}

	values := make([]int, int(count))
	for j := range values {
		value, err := source.next(prop.DataType)
		if err != nil {
			return nil, fmt.Errorf("failed to read list element %d (%s): %w", j, prop.DataType, err)
		}
		values[j] = int(value)
	}
	return values, nil
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}
