package spending

import (
	"fmt"
	"sort"
)

// Col is a named Vector
type Col struct {
	*Vector

	name string
}

// *********** Create ***********

// ColOpt sets a property of a Col in NewCol
type ColOpt func(c *Col) error

func ColName(name string) ColOpt {
	return func(c *Col) error {
		if c == nil {
			return fmt.Errorf("nil column to ColName")
		}

		if c.name != "" {
			return fmt.Errorf("column already named -- use Rename method")
		}

		if e := validName(name); e != nil {
			return e
		}

		c.name = name

		return nil
	}
}

func NewCol(data any, dt DataTypes, opts ...ColOpt) (*Col, error) {
	var col *Col
	if v, ok := data.(*Vector); ok {
		col = &Col{Vector: v}
	}

	if col == nil {
		var (
			v *Vector
			e error
		)
		if v, e = NewVector(data, dt); e != nil {
			return nil, e
		}

		col = &Col{Vector: v}
	}

	for _, opt := range opts {
		if e := opt(col); e != nil {
			return nil, e
		}
	}

	return col, nil
}

// *********** Methods ***********

func (c *Col) Name() string {
	return c.name
}

func (c *Col) DataType() DataTypes {
	return c.VectorType()
}

func (c *Col) Data() *Vector {
	return c.Vector
}

func (c *Col) Copy() *Col {
	return &Col{Vector: c.Vector.Copy(), name: c.name}
}

// Rename returns a copy of the column called newName. c is unchanged.
func (c *Col) Rename(newName string) (*Col, error) {
	if e := validName(newName); e != nil {
		return nil, e
	}

	cx := c.Copy()
	cx.name = newName

	return cx, nil
}

func (c *Col) String() string {
	name := c.Name()
	if name == "" {
		name = "unnamed"
	}

	t := fmt.Sprintf("column: %s\ntype: %s\n", name, c.DataType())

	if c.DataType() == DTstring {
		counts := make(map[string]int)
		for ind := range c.Len() {
			counts[c.ElementString(ind)]++
		}

		var (
			keys []string
			vals []int
		)
		for k := range counts {
			keys = append(keys, k)
		}

		sort.Slice(keys, func(i, j int) bool {
			if counts[keys[i]] == counts[keys[j]] {
				return keys[i] < keys[j]
			}

			return counts[keys[i]] > counts[keys[j]]
		})

		for _, k := range keys {
			vals = append(vals, counts[k])
		}

		return t + prettyPrint([]string{name, "count"}, keys, vals)
	}

	s, e := Describe(c)
	if e != nil {
		return t + e.Error() + "\n"
	}

	return t + s.String()
}
