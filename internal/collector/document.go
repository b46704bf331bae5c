package collector

import "github.com/bitly/go-simplejson"

// The helpers below read a raw document without ever panicking. A nil
// document, a missing key, an out-of-range index or a value of the wrong type
// all report ok=false.

// stringAt reads a string at the given object path.
func stringAt(doc *simplejson.Json, path ...string) (string, bool) {
	if doc == nil {
		return "", false
	}
	s, err := doc.GetPath(path...).String()
	if err != nil {
		return "", false
	}
	return s, true
}

// elementAt returns the i-th element of an array document.
func elementAt(doc *simplejson.Json, i int) (*simplejson.Json, bool) {
	if doc == nil {
		return nil, false
	}
	arr, err := doc.Array()
	if err != nil || i < 0 || i >= len(arr) {
		return nil, false
	}
	return doc.GetIndex(i), true
}

// stringsAtIndex collects the string at index i of every element of an array
// of arrays. Elements where that read fails are skipped.
func stringsAtIndex(doc *simplejson.Json, i int) ([]string, bool) {
	if doc == nil {
		return nil, false
	}
	arr, err := doc.Array()
	if err != nil {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for j := range arr {
		if s, err := doc.GetIndex(j).GetIndex(i).String(); err == nil {
			out = append(out, s)
		}
	}
	return out, true
}
