package extract

import "strings"

// infoString is a fence opener's parsed info text: a language token plus
// any key=value pairs (file=, from=, to=), or a "lang:path" shorthand.
type infoString struct {
	Language string
	KV       map[string]string
}

func parseInfoString(info string) infoString {
	result := infoString{KV: make(map[string]string)}
	fields := splitFields(info)

	for i, f := range fields {
		if eq := strings.IndexByte(f, '='); eq > 0 {
			key := strings.ToLower(f[:eq])
			val := strings.Trim(f[eq+1:], `"'`)
			result.KV[key] = val
			continue
		}
		if i == 0 {
			// lang:path shorthand
			if colon := strings.IndexByte(f, ':'); colon > 0 {
				result.Language = f[:colon]
				result.KV["path"] = f[colon+1:]
				continue
			}
			result.Language = f
		}
	}

	return result
}

func splitFields(s string) []string {
	var fields []string
	var cur strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

// pathFromInfoString resolves the best path hint out of a parsed info
// string, preferring an explicit file= key, then from=/to= (for renames,
// handled by the caller), then the lang:path shorthand's path.
func pathFromInfoString(info infoString) string {
	if p, ok := info.KV["file"]; ok {
		return p
	}
	if p, ok := info.KV["path"]; ok {
		return p
	}
	return ""
}
