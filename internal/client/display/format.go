package display

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// IndentJSON pretty-prints raw JSON, returning the input unchanged when it
// is not valid JSON
func IndentJSON(raw []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}

// PrettyPrintJSON writes v as indented JSON
func PrettyPrintJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Failure.Fprintf(w, "Error formatting JSON: %v\n", err)
		return
	}
	w.Write(append(data, '\n'))
}

// Dump writes the Go structure of v, including types, for debugging
func Dump(w io.Writer, v any) {
	dumper.Fdump(w, v)
}
