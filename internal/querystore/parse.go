package querystore

// ParseRecord converts a location snapshot into a fully populated Record.
//
// Parsing runs in two phases. The first phase parses every registered field and
// every key present in q, keeping nil for values that are missing or invalid.
// The second phase resolves a default for each nil entry, and every default
// reads only the first-phase map. A default never sees another field's default,
// so each DefaultFunc must derive its value from directly supplied siblings.
func ParseRecord(reg Registry, q Query) Record {
	parsed := make(Record, len(reg)+len(q))
	for field := range reg {
		raw, ok := q[field]
		parsed[field] = reg.Codec(field).Parse(raw, ok)
	}
	for field, raw := range q {
		if _, done := parsed[field]; done {
			continue
		}
		parsed[field] = reg.Codec(field).Parse(raw, true)
	}

	out := make(Record, len(parsed))
	for field, v := range parsed {
		if v != nil {
			out[field] = v
			continue
		}
		out[field] = reg.Codec(field).Default(field, v, parsed)
	}
	return out
}
