package chart

// resolveInfluences computes the two transformation readings per palace:
// the palace's own stem against the stars it houses, and the same stem
// against the stars sitting in its opposite counterpart. Both readings
// use the same rule rows as the birth-year tags; a target absent from
// both palaces simply contributes nothing.
func resolveInfluences(ws *Workspace) error {
	for i := range ws.Palaces {
		p := &ws.Palaces[i]
		rule, err := transformRule(p.Stem)
		if err != nil {
			return err
		}
		opp := ws.Opposite(p)
		for t := TransformLu; int(t) < TransformCount; t++ {
			target := rule[t]
			if ps := p.findStar(target); ps != nil {
				ps.SelfInfluence = true
				p.SelfInfluences = append(p.SelfInfluences, Influence{Kind: t, Star: target})
			}
			if opp.findStar(target) != nil {
				p.OppositeInfluences = append(p.OppositeInfluences, Influence{Kind: t, Star: target})
			}
		}
	}
	return nil
}
