package mixed

type direct struct{}

// Direct returns the direct-coercion strategy: the whole cell is coerced to
// a number and the raw value becomes the category only when that fails.
func Direct() Strategy { return direct{} }

func (direct) Name() string { return "direct" }

func (direct) SplitCell(c Cell) (Number, Category, error) {
	num := Coerce(c)
	if num.Valid || c.IsAbsent() {
		return num, Category{}, nil
	}
	return num, category(c.String()), nil
}

// SplitDirect applies the direct-coercion strategy to col.
func SplitDirect(col Column) SplitResult {
	res, _ := Split(Direct(), col)
	return res
}
