package querystore

// SerializeRecord converts a Record into a location snapshot. Fields whose
// codec serializes to "" are omitted, which keeps the location minimal.
func SerializeRecord(reg Registry, rec Record) Query {
	out := make(Query, len(rec))
	for field, v := range rec {
		if raw := reg.Codec(field).Serialize(v); raw != "" {
			out[field] = raw
		}
	}
	return out
}
