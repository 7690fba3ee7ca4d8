// Package cimxml implements the DSP0201 CIM-XML encoding: a streaming
// encoder that writes the exact byte-level wire form spec.md §4.C
// requires, and a parser that tokenizes with encoding/xml.Decoder and
// drives its own element state machine on top (DSP0201's grammar is
// attribute-driven and recursive in a way no struct-tag unmarshaler
// captures). The codec is stateless: no dictionaries are retained
// between calls.
package cimxml
