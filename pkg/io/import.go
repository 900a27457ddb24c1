package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/bifconv/pkg/errors"
	"github.com/matzehuels/bifconv/pkg/network"
)

// ReadJSON decodes a network document from r.
//
// The input must be an object with the keys written by [WriteJSON]:
//
//	{
//	  "network": "Alarm",
//	  "variables": ["Burglary", "Alarm"],
//	  "cpts": {"Burglary": [0.01, 0.99], "Alarm": [[0.94, 0.01], [0.06, 0.99]]},
//	  "states": {"Burglary": ["True", "False"], "Alarm": ["True", "False"]},
//	  "parents": {"Burglary": [], "Alarm": ["Burglary"]}
//	}
//
// CPTs may use either layout. Malformed JSON and documents whose CPT shapes
// do not match the declared states fail with PARSE_ERROR.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*network.Network, error) {
	var doc network.Document
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode network document")
	}
	return network.FromDocument(doc)
}

// ImportJSON reads a JSON network document from the file at path.
// A missing or unreadable file fails with FILE_NOT_FOUND.
func ImportJSON(path string) (*network.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
