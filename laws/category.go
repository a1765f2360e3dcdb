package laws

import (
	"context"

	"github.com/roach88/qed/cat"
)

// CheckCategoryLaws samples associativity and the identity laws of one
// category: (f;g);h = f;(g;h) on composable triples, id;f = f and
// f;id = f on every drawn morphism.
func CheckCategoryLaws(ctx context.Context, c *cat.Category, b Budget) (Result, error) {
	r, cancel := newRun(ctx, LawCategory, c.Name(), c.Fingerprint(), b)
	defer cancel()

	mors, morsExhausted, err := sampleMorphisms(r.ctx, c, b.Samples)
	if err != nil {
		return Result{}, err
	}

	for _, f := range mors {
		if r.halt() {
			break
		}
		r.step()
		checkIdentity(r, c, f)
	}

	triples, complete := composableTriples(c, mors, b.Samples)
	for _, t := range triples {
		if r.halt() {
			break
		}
		r.step()
		checkAssociativity(r, c, t[0], t[1], t[2])
	}

	return r.finish(morsExhausted && complete), nil
}

func checkIdentity(r *run, c *cat.Category, f cat.Morphism) {
	left, err := c.Compose(c.Identity(f.Dom()), f)
	if err != nil {
		r.violate("left identity", f.String(), "composable with id", err.Error())
	} else if !c.MorEqual(left, f) {
		r.violate("left identity", f.String(), f.String(), left.String())
	}

	right, err := c.Compose(f, c.Identity(f.Cod()))
	if err != nil {
		r.violate("right identity", f.String(), "composable with id", err.Error())
	} else if !c.MorEqual(right, f) {
		r.violate("right identity", f.String(), f.String(), right.String())
	}
}

func checkAssociativity(r *run, c *cat.Category, f, g, h cat.Morphism) {
	witness := "(" + f.String() + ", " + g.String() + ", " + h.String() + ")"

	fg, err := c.Compose(f, g)
	if err != nil {
		r.violate("associativity", witness, "f;g defined", err.Error())
		return
	}
	gh, err := c.Compose(g, h)
	if err != nil {
		r.violate("associativity", witness, "g;h defined", err.Error())
		return
	}
	left, err := c.Compose(fg, h)
	if err != nil {
		r.violate("associativity", witness, "(f;g);h defined", err.Error())
		return
	}
	right, err := c.Compose(f, gh)
	if err != nil {
		r.violate("associativity", witness, "f;(g;h) defined", err.Error())
		return
	}
	if !c.MorEqual(left, right) {
		r.violate("associativity", witness, left.String(), right.String())
	}
}
