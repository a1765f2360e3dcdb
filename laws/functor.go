package laws

import (
	"context"
	"fmt"

	"github.com/roach88/qed/cat"
)

// CheckFunctorLaws samples the two functor laws: F(id_a) = id_{F(a)} on
// drawn objects and F(f;g) = F(f);F(g) on drawn composable pairs. Only the
// source category needs a sampler.
func CheckFunctorLaws(ctx context.Context, f *cat.Functor, b Budget) (Result, error) {
	r, cancel := newRun(ctx, LawFunctor, f.Name(), f.Fingerprint(), b)
	defer cancel()

	source := f.Source()
	target := f.Target()

	objs, objsExhausted, err := sampleObjects(r.ctx, source, b.Samples)
	if err != nil {
		return Result{}, err
	}
	for _, a := range objs {
		if r.halt() {
			break
		}
		r.step()

		img, err := f.ApplyMor(source.Identity(a))
		if err != nil {
			r.violate("identity preserved", fmt.Sprintf("%v", a), "image of identity defined", err.Error())
			continue
		}
		want := target.Identity(f.ApplyObj(a))
		if !target.MorEqual(img, want) {
			r.violate("identity preserved", fmt.Sprintf("%v", a), want.String(), img.String())
		}
	}

	mors, morsExhausted, err := sampleMorphisms(r.ctx, source, b.Samples)
	if err != nil {
		return Result{}, err
	}
	pairs, complete := composablePairs(source, mors, b.Samples)
	for _, p := range pairs {
		if r.halt() {
			break
		}
		r.step()
		checkComposandum(r, f, p[0], p[1])
	}

	return r.finish(objsExhausted && morsExhausted && complete), nil
}

func checkComposandum(r *run, f *cat.Functor, g, h cat.Morphism) {
	witness := "(" + g.String() + ", " + h.String() + ")"
	source := f.Source()
	target := f.Target()

	gh, err := source.Compose(g, h)
	if err != nil {
		r.violate("composition preserved", witness, "g;h defined", err.Error())
		return
	}
	whole, err := f.ApplyMor(gh)
	if err != nil {
		r.violate("composition preserved", witness, "F(g;h) defined", err.Error())
		return
	}

	imgG, err := f.ApplyMor(g)
	if err != nil {
		r.violate("composition preserved", witness, "F(g) defined", err.Error())
		return
	}
	imgH, err := f.ApplyMor(h)
	if err != nil {
		r.violate("composition preserved", witness, "F(h) defined", err.Error())
		return
	}
	split, err := target.Compose(imgG, imgH)
	if err != nil {
		r.violate("composition preserved", witness, "F(g);F(h) defined", err.Error())
		return
	}

	if !target.MorEqual(whole, split) {
		r.violate("composition preserved", witness, whole.String(), split.String())
	}
}
