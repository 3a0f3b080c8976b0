package engine

import (
	"github.com/essenza/backend/internal/domain/catalog"
	"github.com/essenza/backend/internal/domain/shared"
)

func (e *Engine) addProduct(s *State, a AddProduct) error {
	y := s.Current()
	p := a.Product.Clone()
	if p.ID == "" {
		p.ID = shared.NewID()
	}
	y.Products = append(y.Products, p)
	return nil
}

func (e *Engine) updateProduct(s *State, a UpdateProduct) error {
	y := s.Current()
	for i, p := range y.Products {
		if p.ID == a.Product.ID {
			y.Products[i] = a.Product.Clone()
			return nil
		}
	}
	return shared.Newf(shared.CodeNotFound, "Product %s not found", a.Product.ID)
}

// deleteProduct cascades to the product's variants and their batches
func (e *Engine) deleteProduct(s *State, a DeleteProduct) error {
	y := s.Current()
	if y.findProduct(a.ProductID) == nil {
		return shared.Newf(shared.CodeNotFound, "Product %s not found", a.ProductID)
	}

	variantIDs := make(map[string]bool)
	kept := y.Variants[:0]
	for _, v := range y.Variants {
		if v.ProductID == a.ProductID {
			variantIDs[v.ID] = true
		} else {
			kept = append(kept, v)
		}
	}
	y.Variants = kept

	keptBatches := y.Batches[:0]
	for _, b := range y.Batches {
		if !variantIDs[b.VariantID] {
			keptBatches = append(keptBatches, b)
		}
	}
	y.Batches = keptBatches

	for i, p := range y.Products {
		if p.ID == a.ProductID {
			y.Products = append(y.Products[:i], y.Products[i+1:]...)
			break
		}
	}
	return nil
}

func (e *Engine) addVariant(s *State, a AddVariant) error {
	y := s.Current()
	if y.findProduct(a.Variant.ProductID) == nil {
		return shared.Newf(shared.CodeNotFound, "Product %s not found", a.Variant.ProductID)
	}
	v := a.Variant.Clone()
	if v.ID == "" {
		v.ID = shared.NewID()
	}
	y.Variants = append(y.Variants, v)
	return nil
}

func (e *Engine) updateVariant(s *State, a UpdateVariant) error {
	y := s.Current()
	for i, v := range y.Variants {
		if v.ID == a.Variant.ID {
			y.Variants[i] = a.Variant.Clone()
			return nil
		}
	}
	return shared.Newf(shared.CodeNotFound, "Variant %s not found", a.Variant.ID)
}

// deleteVariant cascades to the variant's batches
func (e *Engine) deleteVariant(s *State, a DeleteVariant) error {
	y := s.Current()
	if y.findVariant(a.VariantID) == nil {
		return shared.Newf(shared.CodeNotFound, "Variant %s not found", a.VariantID)
	}

	keptBatches := y.Batches[:0]
	for _, b := range y.Batches {
		if b.VariantID != a.VariantID {
			keptBatches = append(keptBatches, b)
		}
	}
	y.Batches = keptBatches

	for i, v := range y.Variants {
		if v.ID == a.VariantID {
			y.Variants = append(y.Variants[:i], y.Variants[i+1:]...)
			break
		}
	}
	return nil
}

func (e *Engine) addCategory(s *State, a AddCategory) error {
	y := s.Current()
	for _, c := range y.Categories {
		if c.NameEquals(a.Category.Name) {
			return shared.Newf(shared.CodeDuplicateName, "Category %q already exists", a.Category.Name)
		}
	}
	c := a.Category.Clone()
	if c.ID == "" {
		c.ID = shared.NewID()
	}
	y.Categories = append(y.Categories, c)
	return nil
}

// updateCategory renames the category and cascades the rename onto every
// product referencing the old name.
func (e *Engine) updateCategory(s *State, a UpdateCategory) error {
	y := s.Current()
	var current *catalog.Category
	for _, c := range y.Categories {
		if c.ID == a.Category.ID {
			current = c
			continue
		}
		if c.NameEquals(a.Category.Name) {
			return shared.Newf(shared.CodeDuplicateName, "Category %q already exists", a.Category.Name)
		}
	}
	if current == nil {
		return shared.Newf(shared.CodeNotFound, "Category %s not found", a.Category.ID)
	}

	oldName := current.Name
	for i, c := range y.Categories {
		if c.ID == a.Category.ID {
			y.Categories[i] = a.Category.Clone()
			break
		}
	}
	if oldName != a.Category.Name {
		for _, p := range y.Products {
			if catalog.NormalizeName(p.Category) == catalog.NormalizeName(oldName) {
				p.Category = a.Category.Name
			}
		}
	}
	return nil
}

// deleteCategory is blocked while any product references the category by name
// or any category has it as parent. It never cascades.
func (e *Engine) deleteCategory(s *State, a DeleteCategory) error {
	y := s.Current()
	var target *catalog.Category
	for _, c := range y.Categories {
		if c.ID == a.CategoryID {
			target = c
			break
		}
	}
	if target == nil {
		return shared.Newf(shared.CodeNotFound, "Category %s not found", a.CategoryID)
	}

	for _, p := range y.Products {
		if target.NameEquals(p.Category) {
			return shared.Newf(shared.CodeReferentialBlock,
				"Category %q is referenced by product %q", target.Name, p.Name)
		}
	}
	for _, c := range y.Categories {
		if c.ParentID != nil && *c.ParentID == target.ID {
			return shared.Newf(shared.CodeReferentialBlock,
				"Category %q has child category %q", target.Name, c.Name)
		}
	}

	for i, c := range y.Categories {
		if c.ID == a.CategoryID {
			y.Categories = append(y.Categories[:i], y.Categories[i+1:]...)
			break
		}
	}
	return nil
}
