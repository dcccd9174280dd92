package snapshot

// Value is one entry value in a Snapshot.
//
// The closed set of implementations is Number, Int, Bool, Text and *Snapshot.
type Value interface {
	isValue()
}

// Number is a floating point snapshot value.
type Number float64

// Int is an integer snapshot value. Counters use it so large counts
// survive rendering without float rounding.
type Int int64

// Bool is a boolean snapshot value.
type Bool bool

// Text is a string snapshot value.
type Text string

func (Number) isValue()    {}
func (Int) isValue()       {}
func (Bool) isValue()      {}
func (Text) isValue()      {}
func (*Snapshot) isValue() {}

// Item is one named entry of a Snapshot.
type Item struct {
	Name  string
	Value Value
}

// Snapshot is an insertion-ordered sequence of named values.
//
// Contract:
// - Concurrency: a Snapshot is built and consumed by a single goroutine.
// - Order: items render in the order they were put.
type Snapshot struct {
	Items []Item
}

// New creates an empty Snapshot.
func New() *Snapshot {
	return &Snapshot{}
}

// Put appends a named value.
func (s *Snapshot) Put(name string, value Value) {
	s.Items = append(s.Items, Item{Name: name, Value: value})
}

// PutNumber appends a named float value.
func (s *Snapshot) PutNumber(name string, value float64) {
	s.Put(name, Number(value))
}

// PutInt appends a named integer value.
func (s *Snapshot) PutInt(name string, value int64) {
	s.Put(name, Int(value))
}

// PutBool appends a named boolean value.
func (s *Snapshot) PutBool(name string, value bool) {
	s.Put(name, Bool(value))
}

// PutText appends a named string value.
func (s *Snapshot) PutText(name, value string) {
	s.Put(name, Text(value))
}

// PutNested appends a named nested snapshot.
func (s *Snapshot) PutNested(name string, nested *Snapshot) {
	s.Put(name, nested)
}

// Len returns the number of items at this level.
func (s *Snapshot) Len() int {
	return len(s.Items)
}

// Find returns the first value with the given name at this level.
func (s *Snapshot) Find(name string) (Value, bool) {
	for _, item := range s.Items {
		if item.Name == name {
			return item.Value, true
		}
	}
	return nil, false
}

// FindPath descends nested snapshots following path segments and returns
// the value at the end of the path.
func (s *Snapshot) FindPath(path ...string) (Value, bool) {
	if len(path) == 0 {
		return nil, false
	}
	current := s
	for i, name := range path {
		value, ok := current.Find(name)
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return value, true
		}
		nested, ok := value.(*Snapshot)
		if !ok {
			return nil, false
		}
		current = nested
	}
	return nil, false
}
