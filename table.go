package benchplot

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Table is a small column oriented data frame. All columns have N rows.
// Order lists the column names in the order they were added and is used
// for printing and CSV export.
type Table struct {
	Name    string
	N       int
	Columns map[string]*Field
	Order   []string
	Pool    *StringPool
}

// NewTable returns an empty table. A nil pool gets a fresh StringPool.
func NewTable(name string, pool *StringPool) *Table {
	if pool == nil {
		pool = NewStringPool()
	}
	return &Table{
		Name:    name,
		Columns: make(map[string]*Field),
		Pool:    pool,
	}
}

// FieldType represents the basic type of a field.
type FieldType uint

const (
	Int FieldType = iota
	Float
	String
)

func (t FieldType) String() string {
	switch t {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	}
	return "FieldType(" + strconv.Itoa(int(t)) + ")"
}

// Field is one column of a Table. Int and Float values are stored
// directly in Data, String values as their index into Pool.
type Field struct {
	Type FieldType
	Data []float64

	// NA marks missing cells. A nil NA means no cell is missing.
	NA []bool

	Pool *StringPool
}

// NewField makes a field of n zero values.
func NewField(n int, t FieldType, pool *StringPool) *Field {
	return &Field{
		Type: t,
		Data: make([]float64, n),
		Pool: pool,
	}
}

// IsNA reports whether row i is missing.
func (f *Field) IsNA(i int) bool {
	return f.NA != nil && f.NA[i]
}

// SetNA marks row i as missing.
func (f *Field) SetNA(i int) {
	if f.NA == nil {
		f.NA = make([]bool, len(f.Data))
	}
	f.Data[i] = 0
	f.NA[i] = true
}

// Set stores x in row i and clears a missing mark.
func (f *Field) Set(i int, x float64) {
	f.Data[i] = x
	if f.NA != nil {
		f.NA[i] = false
	}
}

// String formats the raw value x according to the type of f.
func (f *Field) String(x float64) string {
	switch f.Type {
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case String:
		return f.Pool.Get(int(x))
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Format returns row i as text, the empty string for a missing cell.
func (f *Field) Format(i int) string {
	if f.IsNA(i) {
		return ""
	}
	return f.String(f.Data[i])
}

func (f *Field) Copy() *Field {
	c := &Field{
		Type: f.Type,
		Data: make([]float64, len(f.Data)),
		Pool: f.Pool,
	}
	copy(c.Data, f.Data)
	if f.NA != nil {
		c.NA = make([]bool, len(f.NA))
		copy(c.NA, f.NA)
	}
	return c
}

// Levels returns the distinct non-missing values of f.
func (f *Field) Levels() FloatSet {
	levels := NewFloatSet()
	for i, x := range f.Data {
		if f.IsNA(i) {
			continue
		}
		levels.Add(x)
	}
	return levels
}

// SortedLevels returns the distinct non-missing values of f in natural
// order: numbers ascending, strings lexically.
func (f *Field) SortedLevels() []float64 {
	levels := f.Levels().Elements()
	if f.Type == String {
		sort.SliceStable(levels, func(i, j int) bool {
			return f.Pool.Get(int(levels[i])) < f.Pool.Get(int(levels[j]))
		})
	}
	return levels
}

// MinMax returns the minimum and maximum of the non-missing values in f
// and their indices. The indices are -1 if f has no such value.
func (f *Field) MinMax() (min, max float64, mini, maxi int) {
	min, max = math.Inf(+1), math.Inf(-1)
	mini, maxi = -1, -1
	for i, x := range f.Data {
		if f.IsNA(i) {
			continue
		}
		if x < min {
			min, mini = x, i
		}
		if x > max {
			max, maxi = x, i
		}
	}
	return min, max, mini, maxi
}

// -------------------------------------------------------------------------
// Table operations

// Add stores f as column name. A new column goes to the end of Order,
// a replaced one keeps its position.
func (t *Table) Add(name string, f *Field) {
	if _, ok := t.Columns[name]; !ok {
		t.Order = append(t.Order, name)
	}
	t.Columns[name] = f
}

func (t *Table) Has(name string) bool {
	_, ok := t.Columns[name]
	return ok
}

// FieldNames returns the column names in column order.
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Order))
	copy(names, t.Order)
	return names
}

// Rename renames column old to new. Nothing happens if old does not
// exist or if old == new.
func (t *Table) Rename(old, new string) {
	if old == new {
		return
	}
	f, ok := t.Columns[old]
	if !ok {
		return
	}
	t.Delete(new)
	delete(t.Columns, old)
	t.Columns[new] = f
	for i, n := range t.Order {
		if n == old {
			t.Order[i] = new
		}
	}
}

func (t *Table) Delete(name string) {
	if _, ok := t.Columns[name]; !ok {
		return
	}
	delete(t.Columns, name)
	for i, n := range t.Order {
		if n == name {
			t.Order = append(t.Order[:i], t.Order[i+1:]...)
			break
		}
	}
}

// Copy returns a deep copy of t sharing t's string pool.
func (t *Table) Copy() *Table {
	c := NewTable(t.Name, t.Pool)
	c.N = t.N
	for _, name := range t.Order {
		c.Add(name, t.Columns[name].Copy())
	}
	return c
}

// Value returns the raw value of column col in row i. The boolean is
// false for missing cells and unknown columns.
func (t *Table) Value(i int, col string) (float64, bool) {
	f, ok := t.Columns[col]
	if !ok || f.IsNA(i) {
		return 0, false
	}
	return f.Data[i], true
}

// Str returns the formatted value of column col in row i.
func (t *Table) Str(i int, col string) string {
	f, ok := t.Columns[col]
	if !ok {
		return ""
	}
	return f.Format(i)
}

// Append adds the rows of u to t. Both tables must have the same columns
// with the same types. Strings of u are re-interned into t's pool.
func (t *Table) Append(u *Table) error {
	if !same(t.Order, u.Order) {
		return fmt.Errorf("append %q to %q: columns %v and %v differ",
			u.Name, t.Name, u.Order, t.Order)
	}
	for name, f := range t.Columns {
		g := u.Columns[name]
		if f.Type != g.Type {
			return fmt.Errorf("%w: column %q is %s in %q but %s in %q",
				ErrTypeMismatch, name, f.Type, t.Name, g.Type, u.Name)
		}
	}
	for name, f := range t.Columns {
		appendField(f, t.N, u.Columns[name], u.N)
	}
	t.N += u.N
	return nil
}

// appendField appends the n rows of g to f which has m rows. A nil g
// appends n missing cells. Numbers appended to a String field are
// stored as their text.
func appendField(f *Field, m int, g *Field, n int) {
	for i := 0; i < n; i++ {
		f.Data = append(f.Data, 0)
		if f.NA != nil {
			f.NA = append(f.NA, false)
		}
		if g == nil || g.IsNA(i) {
			f.SetNA(m + i)
			continue
		}
		x := g.Data[i]
		switch {
		case f.Type == String && g.Type != String:
			x = float64(f.Pool.Add(g.String(x)))
		case f.Type == String && f.Pool != g.Pool:
			x = float64(f.Pool.Add(g.Pool.Get(int(x))))
		}
		f.Data[m+i] = x
	}
}

// Filter extracts all rows from t where column field has value.
// For String fields value is the pool index, see StringPool.Find.
func Filter(t *Table, field string, value float64) *Table {
	f, ok := t.Columns[field]
	if !ok {
		return t.Copy()
	}
	var rows []int
	for i := 0; i < t.N; i++ {
		if !f.IsNA(i) && f.Data[i] == value {
			rows = append(rows, i)
		}
	}
	return t.rows(fmt.Sprintf("%s|%s=%s", t.Name, field, f.String(value)), rows)
}

// rows returns a new table with the given rows of t.
func (t *Table) rows(name string, rows []int) *Table {
	result := NewTable(name, t.Pool)
	result.N = len(rows)
	for _, col := range t.Order {
		f := t.Columns[col]
		g := NewField(len(rows), f.Type, f.Pool)
		for j, i := range rows {
			if f.IsNA(i) {
				g.SetNA(j)
				continue
			}
			g.Data[j] = f.Data[i]
		}
		result.Add(col, g)
	}
	return result
}

// Levels returns the distinct non-missing values of field in t.
func Levels(t *Table, field string) FloatSet {
	f, ok := t.Columns[field]
	if !ok {
		return NewFloatSet()
	}
	return f.Levels()
}

// Partition splits t into one table per level of field.
func Partition(t *Table, field string, levels []float64) []*Table {
	parts := make([]*Table, len(levels))
	for i, level := range levels {
		parts[i] = Filter(t, field, level)
	}
	return parts
}

// MinMax determines minimum and maximum of field in t and the rows
// where they occur.
func MinMax(t *Table, field string) (min, max float64, mini, maxi int) {
	f, ok := t.Columns[field]
	if !ok {
		return math.NaN(), math.NaN(), -1, -1
	}
	return f.MinMax()
}

// Print writes t as an aligned text table. Missing cells print as NA.
func (t *Table) Print(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%d rows)\n", t.Name, t.N)
	fmt.Fprintf(tw, "#\t%s\n", strings.Join(t.Order, "\t"))
	for i := 0; i < t.N; i++ {
		cells := make([]string, len(t.Order))
		for j, col := range t.Order {
			if t.Columns[col].IsNA(i) {
				cells[j] = "NA"
			} else {
				cells[j] = t.Columns[col].Format(i)
			}
		}
		fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// -------------------------------------------------------------------------
// Construction from literal data

// NewTableFromRows builds a table from literal tuples. Each cell must be
// an integer, a float or a string. The type of a column is inferred from
// its cells: integers only give Int, a mix of integers and floats gives
// Float, strings give String. A nil cell is missing.
func NewTableFromRows(name string, columns []string, rows [][]interface{}) (*Table, error) {
	t := NewTable(name, nil)
	t.N = len(rows)
	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%s row %d has %d cells, want %d: %w",
				name, r, len(row), len(columns), ErrRaggedRow)
		}
	}

	for c, col := range columns {
		if t.Has(col) {
			return nil, fmt.Errorf("%s: %w: %q", name, ErrColumnExists, col)
		}
		typ, err := inferType(rows, c)
		if err != nil {
			return nil, fmt.Errorf("%s column %q: %w", name, col, err)
		}
		f := NewField(t.N, typ, t.Pool)
		for r, row := range rows {
			cell := row[c]
			if cell == nil {
				f.SetNA(r)
				continue
			}
			if typ == String {
				f.Data[r] = float64(t.Pool.Add(cell.(string)))
				continue
			}
			x, _, _ := number(reflect.ValueOf(cell))
			f.Data[r] = x
		}
		t.Add(col, f)
	}
	return t, nil
}

func inferType(rows [][]interface{}, c int) (FieldType, error) {
	typ, seen := Int, false
	for r, row := range rows {
		cell := row[c]
		if cell == nil {
			continue
		}
		var ct FieldType
		if _, ok := cell.(string); ok {
			ct = String
		} else {
			_, isInt, ok := number(reflect.ValueOf(cell))
			if !ok {
				return 0, fmt.Errorf("row %d: %w: cannot store %T", r, ErrTypeMismatch, cell)
			}
			ct = Float
			if isInt {
				ct = Int
			}
		}
		switch {
		case !seen:
			typ, seen = ct, true
		case typ == ct:
		case typ != String && ct != String:
			typ = Float
		default:
			return 0, fmt.Errorf("row %d: %w: strings mixed with numbers", r, ErrTypeMismatch)
		}
	}
	return typ, nil
}

// number converts a numeric reflect value to float64 and reports whether
// it was an integer kind.
func number(v reflect.Value) (x float64, isInt bool, ok bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true, true
	case reflect.Float32, reflect.Float64:
		return v.Float(), false, true
	}
	return 0, false, false
}

// NewTableFrom constructs a table from a slice of structs. Exported
// fields of integer, float or string type become columns. Methods of the
// element type which take no argument and return such a type become
// computed columns:
//     func(m Measurement) BMI() float64 { return m.Weight / (m.Height * m.Height) }
func NewTableFrom(name string, data interface{}) (*Table, error) {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice || v.Type().Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot convert %T to table", data)
	}
	et := v.Type().Elem()
	n := v.Len()
	t := NewTable(name, nil)
	t.N = n

	kindType := func(k reflect.Kind) (FieldType, bool) {
		switch k {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return Int, true
		case reflect.Float32, reflect.Float64:
			return Float, true
		case reflect.String:
			return String, true
		}
		return 0, false
	}
	store := func(f *Field, i int, x reflect.Value) {
		if f.Type == String {
			f.Data[i] = float64(t.Pool.Add(x.String()))
			return
		}
		f.Data[i], _, _ = number(x)
	}

	// Fields first.
	for j := 0; j < et.NumField(); j++ {
		sf := et.Field(j)
		if sf.PkgPath != "" {
			continue
		}
		typ, ok := kindType(sf.Type.Kind())
		if !ok {
			continue
		}
		f := NewField(n, typ, t.Pool)
		for i := 0; i < n; i++ {
			store(f, i, v.Index(i).Field(j))
		}
		t.Add(sf.Name, f)
	}

	// The same for methods.
	for j := 0; j < et.NumMethod(); j++ {
		m := et.Method(j)
		mt := m.Type
		if mt.NumIn() != 1 || mt.NumOut() != 1 {
			continue
		}
		typ, ok := kindType(mt.Out(0).Kind())
		if !ok {
			continue
		}
		f := NewField(n, typ, t.Pool)
		for i := 0; i < n; i++ {
			out := m.Func.Call([]reflect.Value{v.Index(i)})
			store(f, i, out[0])
		}
		t.Add(m.Name, f)
	}

	return t, nil
}

func contains(s []string, t string) bool {
	for _, ss := range s {
		if t == ss {
			return true
		}
	}
	return false
}

// same reports whether s and t contain the same strings, in any order.
func same(s []string, t []string) bool {
	if len(s) != len(t) {
		return false
	}
	for _, x := range s {
		if !contains(t, x) {
			return false
		}
	}
	return true
}
