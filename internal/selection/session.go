package selection

import (
	"github.com/google/uuid"

	"github.com/codclick-aut6/clickprato6-sub000/internal/catalog"
	"github.com/codclick-aut6/clickprato6-sub000/internal/combo"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/enums"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
	"github.com/codclick-aut6/clickprato6-sub000/pkg/types"
)

// State is the observable phase of one selection session.
type State string

const (
	StateEmpty        State = "empty"
	StateChoosingHalf State = "choosing_half"
	StateValid        State = "valid"
	StateInvalid      State = "invalid"
	StateConfirmed    State = "confirmed"
	StateCancelled    State = "cancelled"
)

type row struct {
	variation models.Variation
	quantity  int
	half      enums.HalfSelection
}

type groupState struct {
	group models.VariationGroup
	rows  []*row
}

type pendingIncrement struct {
	group *groupState
	row   *row
}

// Session drives one item's variation selection from open to confirm or
// cancel. All mutations are synchronous and validity is recomputed on every
// change; Confirm stays blocked while any group is outside its bounds.
type Session struct {
	item        models.CatalogItem
	view        *catalog.View
	isHalfPizza bool
	combination *types.Combination
	groups      []*groupState
	border      *models.Border
	pending     *pendingIncrement
	terminal    State
}

// NewSession opens a selection session for a standard catalog item. Items
// without variation groups are short-circuited upstream and never reach
// this component.
func NewSession(item models.CatalogItem, view *catalog.View) (*Session, error) {
	if view == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog view is required")
	}
	if len(item.Groups) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item has no variation groups to select")
	}
	s := &Session{item: item, view: view}
	s.initRows()
	return s, nil
}

// NewCombinedSession opens a session over a synthesized half-and-half item.
func NewCombinedSession(combined combo.Combined, view *catalog.View) (*Session, error) {
	item := combined.Item()
	if view == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog view is required")
	}
	combination := combined.Combination
	s := &Session{
		item:        item,
		view:        view,
		isHalfPizza: true,
		combination: &combination,
	}
	s.initRows()
	return s, nil
}

// NewEditSession reopens a session seeded from an existing line's
// selections, preserving prior quantities and half targets.
func NewEditSession(item models.CatalogItem, view *catalog.View, existing types.SelectedGroups, border *types.BorderSnapshot, combination *types.Combination) (*Session, error) {
	var s *Session
	var err error
	if combination != nil {
		s = &Session{item: item, view: view, isHalfPizza: true, combination: combination}
		if view == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog view is required")
		}
		s.initRows()
	} else {
		s, err = NewSession(item, view)
		if err != nil {
			return nil, err
		}
	}

	for _, selected := range existing {
		group := s.findGroup(selected.GroupID)
		if group == nil {
			continue
		}
		for _, v := range selected.Variations {
			if r := findRow(group, v.VariationID); r != nil {
				r.quantity = v.Quantity
				r.half = v.Half
			}
		}
	}

	if border != nil {
		// stale border ids resolve to no border, never an error
		_ = s.SelectBorder(border.BorderID)
	}
	return s, nil
}

func (s *Session) initRows() {
	s.groups = make([]*groupState, 0, len(s.item.Groups))
	for _, group := range s.item.Groups {
		gs := &groupState{group: group}
		for _, variation := range s.view.VariationsForGroup(group, s.item) {
			gs.rows = append(gs.rows, &row{variation: variation})
		}
		s.groups = append(s.groups, gs)
	}
}

// State reports the session's current phase.
func (s *Session) State() State {
	if s.terminal != "" {
		return s.terminal
	}
	if s.pending != nil {
		return StateChoosingHalf
	}
	if s.totalQuantity() == 0 && s.allGroupsValid() {
		return StateEmpty
	}
	if s.allGroupsValid() {
		return StateValid
	}
	return StateInvalid
}

// Increase adds one unit of the variation to the group. On a combined item
// whose group allows per-half targeting, an untagged row pauses the session
// in the choosing-half sub-state until ChooseHalf commits the increment.
func (s *Session) Increase(groupID, variationID uuid.UUID) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}

	group := s.findGroup(groupID)
	if group == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variation group not found")
	}
	r := findRow(group, variationID)
	if r == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variation not found in group")
	}

	if groupTotal(group) >= group.group.MaxAllowed {
		return pkgerrors.New(pkgerrors.CodeValidation, s.view.MessageFor(group.group, s.selectionOf(group)))
	}

	if s.isHalfPizza && group.group.AllowPerHalf && r.half == enums.HalfSelectionNone {
		s.pending = &pendingIncrement{group: group, row: r}
		return nil
	}

	r.quantity++
	return nil
}

// ChooseHalf commits a paused increment with the chosen half target.
func (s *Session) ChooseHalf(half enums.HalfSelection) error {
	if s.terminal != "" {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "selection session is closed")
	}
	if s.pending == nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no half choice is pending")
	}
	if !half.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "half target must be half1, half2 or whole")
	}

	s.pending.row.half = half
	s.pending.row.quantity++
	s.pending = nil
	return nil
}

// DismissHalfChoice abandons a paused increment without committing it.
func (s *Session) DismissHalfChoice() {
	s.pending = nil
}

// Decrease removes one unit, clearing the half target once the row empties.
func (s *Session) Decrease(groupID, variationID uuid.UUID) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}

	group := s.findGroup(groupID)
	if group == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variation group not found")
	}
	r := findRow(group, variationID)
	if r == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variation not found in group")
	}

	if r.quantity > 0 {
		r.quantity--
	}
	if r.quantity == 0 {
		r.half = enums.HalfSelectionNone
	}
	return nil
}

// SelectBorder activates exactly one border, replacing any previous choice.
// A nil id clears the selection; an unknown id resolves to no border.
func (s *Session) SelectBorder(borderID uuid.UUID) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	if borderID == uuid.Nil {
		s.border = nil
		return nil
	}
	for i := range s.item.Borders {
		candidate := s.item.Borders[i]
		if candidate.ID == borderID && candidate.Available {
			s.border = &candidate
			return nil
		}
	}
	s.border = nil
	return nil
}

// Apply replays an entire desired selection through the state machine so
// payload-driven callers share the interactive path's validation.
func (s *Session) Apply(desired types.SelectedGroups) error {
	for _, group := range desired {
		for _, v := range group.Variations {
			for i := 0; i < v.Quantity; i++ {
				if err := s.Increase(group.GroupID, v.VariationID); err != nil {
					return err
				}
				if s.pending != nil {
					half := v.Half
					if half == enums.HalfSelectionNone {
						// Untargeted topping covers both halves
						// and is charged for both.
						half = enums.HalfSelectionWhole
					}
					if err := s.ChooseHalf(half); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// GroupStatuses reports each group's aggregate count against its bounds.
func (s *Session) GroupStatuses() []catalog.GroupStatus {
	out := make([]catalog.GroupStatus, 0, len(s.groups))
	for _, group := range s.groups {
		out = append(out, s.view.StatusOf(group.group, s.selectionOf(group)))
	}
	return out
}

// Confirm closes the session, dropping zero-quantity rows and enriching the
// survivors with the authoritative catalog name and price.
func (s *Session) Confirm() (types.SelectedGroups, *types.BorderSnapshot, error) {
	if s.terminal != "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "selection session is closed")
	}
	if s.pending != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "half choice is still pending")
	}

	for _, group := range s.groups {
		status := s.view.StatusOf(group.group, s.selectionOf(group))
		if !status.Valid {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, s.view.MessageFor(group.group, s.selectionOf(group)))
		}
	}

	selections := make(types.SelectedGroups, 0, len(s.groups))
	for _, group := range s.groups {
		selected := types.SelectedGroup{GroupID: group.group.ID, GroupName: group.group.Name}
		for _, r := range group.rows {
			if r.quantity <= 0 {
				continue
			}
			name := r.variation.Name
			if live, ok := s.view.Variation(r.variation.ID); ok {
				name = live.Name
			}
			selected.Variations = append(selected.Variations, types.SelectedVariation{
				VariationID:     r.variation.ID,
				Name:            name,
				Quantity:        r.quantity,
				AdditionalPrice: s.view.PriceOf(r.variation.ID),
				Half:            r.half,
			})
		}
		if len(selected.Variations) > 0 {
			selections = append(selections, selected)
		}
	}

	var border *types.BorderSnapshot
	if s.border != nil {
		border = &types.BorderSnapshot{
			BorderID:        s.border.ID,
			Name:            s.border.Name,
			AdditionalPrice: s.border.AdditionalPrice,
		}
	}

	s.terminal = StateConfirmed
	return selections, border, nil
}

// Cancel discards the session.
func (s *Session) Cancel() {
	if s.terminal == "" {
		s.terminal = StateCancelled
	}
}

// Combination returns the flavor pair for half-and-half sessions, nil for
// standard items.
func (s *Session) Combination() *types.Combination {
	return s.combination
}

// IsHalfPizza reports whether this session prices as a combined item.
func (s *Session) IsHalfPizza() bool {
	return s.isHalfPizza
}

// Item returns the item the session was opened for.
func (s *Session) Item() models.CatalogItem {
	return s.item
}

func (s *Session) ensureEditable() error {
	if s.terminal != "" {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "selection session is closed")
	}
	if s.pending != nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "half choice is pending")
	}
	return nil
}

func (s *Session) findGroup(groupID uuid.UUID) *groupState {
	for _, group := range s.groups {
		if group.group.ID == groupID {
			return group
		}
	}
	return nil
}

func (s *Session) selectionOf(group *groupState) types.SelectedGroup {
	selected := types.SelectedGroup{GroupID: group.group.ID, GroupName: group.group.Name}
	for _, r := range group.rows {
		if r.quantity <= 0 {
			continue
		}
		selected.Variations = append(selected.Variations, types.SelectedVariation{
			VariationID: r.variation.ID,
			Quantity:    r.quantity,
			Half:        r.half,
		})
	}
	return selected
}

func (s *Session) totalQuantity() int {
	total := 0
	for _, group := range s.groups {
		total += groupTotal(group)
	}
	return total
}

func (s *Session) allGroupsValid() bool {
	for _, group := range s.groups {
		if !s.view.StatusOf(group.group, s.selectionOf(group)).Valid {
			return false
		}
	}
	return true
}

func findRow(group *groupState, variationID uuid.UUID) *row {
	for _, r := range group.rows {
		if r.variation.ID == variationID {
			return r
		}
	}
	return nil
}

func groupTotal(group *groupState) int {
	total := 0
	for _, r := range group.rows {
		total += r.quantity
	}
	return total
}
