package chart

// SelectPalace returns the palace carrying name. When that palace houses
// no primary star the reading borrows the opposite palace instead; the
// second return reports the borrow.
func (r *Result) SelectPalace(name PalaceName) (*Palace, bool, error) {
	p, err := r.PalaceNamed(name)
	if err != nil {
		return nil, false, err
	}
	if p.HasMajor() {
		return p, false, nil
	}
	return r.PalaceAt(OppositePosition(p.Position)), true, nil
}

// WealthPalace returns the 财帛 reading with borrowing.
func (r *Result) WealthPalace() (*Palace, bool, error) {
	return r.SelectPalace(PalaceWealth)
}

// TravelPalace returns the 迁移 reading with borrowing.
func (r *Result) TravelPalace() (*Palace, bool, error) {
	return r.SelectPalace(PalaceTravel)
}

// CareerPalace returns the 官禄 reading with borrowing.
func (r *Result) CareerPalace() (*Palace, bool, error) {
	return r.SelectPalace(PalaceCareer)
}
