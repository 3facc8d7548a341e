package knowledge

type void struct{}

// Set is a hash set over any comparable element type.
type Set[T comparable] map[T]void

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, v := range items {
		s[v] = void{}
	}
	return s
}

func (s Set[T]) Add(v T)      { s[v] = void{} }
func (s Set[T]) Delete(v T)   { delete(s, v) }
func (s Set[T]) Len() int     { return len(s) }
func (s Set[T]) Has(v T) bool { _, ok := s[v]; return ok }

func (s Set[T]) Clone() Set[T] {
	result := make(Set[T], len(s))
	for v := range s {
		result[v] = void{}
	}
	return result
}

func (s Set[T]) Values() []T {
	result := make([]T, 0, len(s))
	for v := range s {
		result = append(result, v)
	}
	return result
}

func (s Set[T]) Union(x Set[T]) {
	for v := range x {
		s[v] = void{}
	}
}

// Diff returns the elements of s not present in x.
func (s Set[T]) Diff(x Set[T]) Set[T] {
	result := make(Set[T])
	for v := range s {
		if _, ok := x[v]; !ok {
			result[v] = void{}
		}
	}
	return result
}

func (s Set[T]) SubsetOf(x Set[T]) bool {
	for v := range s {
		if _, ok := x[v]; !ok {
			return false
		}
	}
	return true
}

func (s Set[T]) Equal(x Set[T]) bool {
	return len(s) == len(x) && s.SubsetOf(x)
}
