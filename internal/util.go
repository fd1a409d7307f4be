package internal

// ReconstructPath rebuilds the path that ends at current by following parent
// indices until a root (negative parent), then reverses it so the root comes
// first.
func ReconstructPath[Item any](
	current int32,
	parent func(index int32) int32,
	item func(index int32) Item,
) []Item {
	var path []Item
	for index := current; index >= 0; index = parent(index) {
		path = append(path, item(index))
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
