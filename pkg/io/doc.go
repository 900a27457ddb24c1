// Package io reads and writes network documents as JSON.
//
// # JSON Format
//
// A document has five top-level keys, always in this order:
//
//	{
//	  "network": "Alarm",
//	  "variables": ["Burglary", "Alarm"],
//	  "cpts": {
//	    "Alarm": [[0.94, 0.01], [0.06, 0.99]],
//	    "Burglary": [0.01, 0.99]
//	  },
//	  "states": {"Alarm": ["True", "False"], "Burglary": ["True", "False"]},
//	  "parents": {"Alarm": ["Burglary"], "Burglary": []}
//	}
//
// "variables" keeps declaration order; keys inside the maps are sorted.
// Every variable has a "parents" entry, empty for roots. The nesting of a
// CPT depends on the [network.Layout] it was assembled with; both layouts
// list values in the same row-major order.
//
// # Export
//
// [WriteJSON] and [ExportJSON] encode the whole document before writing, so
// output is either complete or absent. The default is one line followed by a
// newline; set [Options].Indent for pretty output.
//
// # Import
//
// [ReadJSON] and [ImportJSON] decode a document back into a
// [network.Network], accepting either layout:
//
//	n, err := io.ImportJSON("alarm.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
package io
