package laws

import (
	"context"

	"github.com/roach88/qed/cat"
)

// CheckNaturality samples the naturality square of a transformation
// alpha: F => G: for every drawn f: a -> b in the source category,
// F(f);alpha_b must equal alpha_a;G(f) in the target category. The
// violating morphism is the counterexample witness.
func CheckNaturality(ctx context.Context, t *cat.Transformation, b Budget) (Result, error) {
	r, cancel := newRun(ctx, LawNaturality, t.Name(), t.Fingerprint(), b)
	defer cancel()

	source := t.Source().Source()
	mors, exhausted, err := sampleMorphisms(r.ctx, source, b.Samples)
	if err != nil {
		return Result{}, err
	}

	for _, f := range mors {
		if r.halt() {
			break
		}
		r.step()
		checkSquare(r, t, f)
	}

	return r.finish(exhausted), nil
}

func checkSquare(r *run, t *cat.Transformation, f cat.Morphism) {
	witness := f.String()
	ff := t.Source()
	gg := t.Target()
	d := ff.Target()

	atDom, err := t.At(f.Dom())
	if err != nil {
		r.violate("naturality square", witness, "component at dom", err.Error())
		return
	}
	atCod, err := t.At(f.Cod())
	if err != nil {
		r.violate("naturality square", witness, "component at cod", err.Error())
		return
	}

	imgF, err := ff.ApplyMor(f)
	if err != nil {
		r.violate("naturality square", witness, "F(f) defined", err.Error())
		return
	}
	imgG, err := gg.ApplyMor(f)
	if err != nil {
		r.violate("naturality square", witness, "G(f) defined", err.Error())
		return
	}

	down, err := d.Compose(imgF, atCod)
	if err != nil {
		r.violate("naturality square", witness, "F(f);alpha_cod defined", err.Error())
		return
	}
	across, err := d.Compose(atDom, imgG)
	if err != nil {
		r.violate("naturality square", witness, "alpha_dom;G(f) defined", err.Error())
		return
	}

	if !d.MorEqual(down, across) {
		r.violate("naturality square", witness, down.String(), across.String())
	}
}
