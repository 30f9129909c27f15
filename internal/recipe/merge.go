package recipe

// Merge deep-merges documents left to right, starting from an empty
// document. Mapping values merge recursively (union of keys); scalar and
// sequence values from later documents replace earlier ones. Order is
// semantically meaningful: merging is not commutative.
//
// Merge never mutates its inputs and is deterministic: folding pairwise
// left to right yields the same result as merging the full sequence.
func Merge(docs ...Document) Document {
	out := Document{}
	for _, doc := range docs {
		mergeInto(out, doc)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for key, value := range src {
		if sub, ok := value.(map[string]any); ok {
			if existing, ok := dst[key].(map[string]any); ok {
				mergeInto(existing, sub)
				continue
			}
			// Deep-copy so the destination never aliases a source document
			fresh := map[string]any{}
			mergeInto(fresh, sub)
			dst[key] = fresh
			continue
		}
		dst[key] = value
	}
}
