package pricebook

// Collection is the ordered product list. Newest records come first.
// Methods never alias the caller's data.
type Collection struct {
	items []Product
}

// NewCollection copies products into a collection.
func NewCollection(products []Product) *Collection {
	c := &Collection{items: make([]Product, 0, len(products))}
	for _, p := range products {
		c.items = append(c.items, p.Clone())
	}
	return c
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns a deep copy in collection order.
func (c *Collection) Items() []Product {
	out := make([]Product, len(c.items))
	for i, p := range c.items {
		out[i] = p.Clone()
	}
	return out
}

func (c *Collection) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the record with the given id.
func (c *Collection) Get(id string) (Product, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return Product{}, false
	}
	return c.items[i].Clone(), true
}

// Prepend inserts products at the front, keeping their relative order.
func (c *Collection) Prepend(products ...Product) {
	if len(products) == 0 {
		return
	}
	items := make([]Product, 0, len(products)+len(c.items))
	for _, p := range products {
		items = append(items, p.Clone())
	}
	c.items = append(items, c.items...)
}

// Update merges patch into the record and stamps updatedAt. It reports
// false without error when the id is unknown.
func (c *Collection) Update(id string, patch Patch, updatedAt int64) (Product, bool, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Product{}, false, nil
	}
	fields, err := c.items[i].Fields.Apply(patch)
	if err != nil {
		return Product{}, true, err
	}
	return c.Replace(id, fields, updatedAt)
}

// Replace overwrites every editable field of the record.
func (c *Collection) Replace(id string, fields Fields, updatedAt int64) (Product, bool, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Product{}, false, nil
	}
	c.items[i] = NewProduct(id, fields, updatedAt)
	return c.items[i].Clone(), true, nil
}

// Delete removes the record. Unknown ids are ignored.
func (c *Collection) Delete(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return true
}
