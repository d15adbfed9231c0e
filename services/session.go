package services

import (
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// ErrInvalidTransition marks an event that is not legal in the current
// view. The session state is left untouched; the kiosk keeps running.
var ErrInvalidTransition = errors.New("invalid transition")

type View string

const (
	ViewOrderType  View = "orderType"
	ViewMenu       View = "menu"
	ViewCart       View = "cart"
	ViewPayment    View = "payment"
	ViewProcessing View = "processing"
	ViewCompleted  View = "completed"
)

// Overlay is a sub-state layered over the menu view. It never replaces
// the view itself.
type Overlay string

const (
	OverlayNone             Overlay = ""
	OverlayInactivityPrompt Overlay = "inactivityPrompt"
	OverlayVoiceAssist      Overlay = "voiceAssist"
	OverlayStaffCalling     Overlay = "staffCalling"
)

type OrderType string

const (
	OrderTypeNone    OrderType = ""
	OrderTypeDineIn  OrderType = "dineIn"
	OrderTypeTakeOut OrderType = "takeOut"
)

// PaymentMethods the payment screen offers.
var PaymentMethods = []string{"card", "cash", "mobile", "gift"}

// Timings are the scheduled-transition delays, from config.
type Timings struct {
	Processing time.Duration
	Completed  time.Duration
	Inactivity time.Duration
	StaffCall  time.Duration
}

// Snapshot is what the presentation layer receives after every change.
type Snapshot struct {
	ID              string      `json:"id"`
	View            View        `json:"view"`
	Overlay         Overlay     `json:"overlay"`
	OrderType       OrderType   `json:"orderType"`
	Cart            []CartEntry `json:"cart"`
	TotalPrice      int64       `json:"totalPrice"`
	TotalItems      int         `json:"totalItems"`
	Selection       Selection   `json:"selection"`
	SpecialRequests string      `json:"specialRequests"`
	PaymentMethod   string      `json:"paymentMethod"`
	OrderNumber     string      `json:"orderNumber"`
	Listening       bool        `json:"listening"`
	SpeechError     string      `json:"speechError,omitempty"`
}

// Session owns one customer's ordering interaction from order-type
// selection through completion. All mutation happens under one mutex;
// timer callbacks re-check the epoch so a timer scheduled against an
// abandoned session can never mutate the next customer's order.
type Session struct {
	ID string

	mu    sync.Mutex
	epoch uint64

	view            View
	overlay         Overlay
	orderType       OrderType
	cart            *Cart
	selection       Selection
	specialRequests string
	paymentMethod   string
	orderNumber     string

	listening   bool
	speechError string

	catalog    *Catalog
	sched      Scheduler
	timings    Timings
	recognizer Recognizer

	// pendingStop holds a recognizer whose Stop must run after the lock
	// is released: Stop delivers OnEnd back through publish, so calling
	// it under s.mu would deadlock.
	pendingStop Recognizer

	inactivityCancel CancelFunc
	flowCancel       CancelFunc

	// notify is called with a fresh snapshot after every successful
	// mutation, outside the lock.
	notify func(Snapshot)

	// onStaffCall records a staff call (persisted by the caller).
	onStaffCall func(sessionID string, view View)
}

func NewSession(id string, catalog *Catalog, sched Scheduler, timings Timings) *Session {
	return &Session{
		ID:        id,
		view:      ViewOrderType,
		orderType: OrderTypeNone,
		cart:      NewCart(),
		selection: DefaultSelection(),
		catalog:   catalog,
		sched:     sched,
		timings:   timings,
	}
}

func (s *Session) SetNotify(fn func(Snapshot))            { s.notify = fn }
func (s *Session) SetStaffCallHook(fn func(string, View)) { s.onStaffCall = fn }
func (s *Session) SetRecognizer(r Recognizer)             { s.recognizer = r }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:              s.ID,
		View:            s.view,
		Overlay:         s.overlay,
		OrderType:       s.orderType,
		Cart:            s.cart.Entries(),
		TotalPrice:      s.cart.TotalPrice(),
		TotalItems:      s.cart.TotalItems(),
		Selection:       s.selection,
		SpecialRequests: s.specialRequests,
		PaymentMethod:   s.paymentMethod,
		OrderNumber:     s.orderNumber,
		Listening:       s.listening,
		SpeechError:     s.speechError,
	}
}

// publish runs fn under the lock and, when it succeeds, hands the
// resulting snapshot to the notifier.
func (s *Session) publish(fn func() error) error {
	s.mu.Lock()
	err := fn()
	var snap Snapshot
	if err == nil {
		snap = s.snapshotLocked()
	}
	notify := s.notify
	stop := s.pendingStop
	s.pendingStop = nil
	s.mu.Unlock()

	if stop != nil {
		stop.Stop()
	}
	if err == nil && notify != nil {
		notify(snap)
	}
	return err
}

// ---- view transitions ----

func (s *Session) SelectOrderType(t OrderType) error {
	return s.publish(func() error {
		if s.view != ViewOrderType {
			return ErrInvalidTransition
		}
		if t != OrderTypeDineIn && t != OrderTypeTakeOut {
			return ErrInvalidTransition
		}
		// A stale cart or filter from an abandoned session must not leak
		// into the new one.
		s.cart.Clear()
		s.selection = DefaultSelection()
		s.specialRequests = ""
		s.orderType = t
		s.view = ViewMenu
		s.restartInactivityLocked()
		return nil
	})
}

func (s *Session) OpenCart() error {
	return s.publish(func() error {
		if s.view != ViewMenu || s.overlay != OverlayNone {
			return ErrInvalidTransition
		}
		s.stopInactivityLocked()
		s.view = ViewCart
		return nil
	})
}

func (s *Session) BackToMenu() error {
	return s.publish(func() error {
		if s.view != ViewCart {
			return ErrInvalidTransition
		}
		s.view = ViewMenu
		s.restartInactivityLocked()
		return nil
	})
}

func (s *Session) Checkout() error {
	return s.publish(func() error {
		if s.view != ViewCart || s.cart.Empty() {
			return ErrInvalidTransition
		}
		s.view = ViewPayment
		return nil
	})
}

func (s *Session) BackToCart() error {
	return s.publish(func() error {
		if s.view != ViewPayment {
			return ErrInvalidTransition
		}
		s.view = ViewCart
		return nil
	})
}

// SelectPayment picks a method, issues the order number and drives the
// two scheduled hops: processing -> completed -> fresh session.
func (s *Session) SelectPayment(method string) error {
	return s.publish(func() error {
		if s.view != ViewPayment || s.cart.Empty() {
			return ErrInvalidTransition
		}
		valid := false
		for _, m := range PaymentMethods {
			if m == method {
				valid = true
				break
			}
		}
		if !valid {
			return ErrInvalidTransition
		}

		s.paymentMethod = method
		// Single terminal, no persistence: 4 random digits with no
		// collision check across sessions.
		s.orderNumber = strconv.Itoa(1000 + rand.Intn(9000))
		s.view = ViewProcessing

		epoch := s.epoch
		s.flowCancel = s.sched.Schedule(s.timings.Processing, func() {
			s.completeProcessing(epoch)
		})
		return nil
	})
}

func (s *Session) completeProcessing(epoch uint64) {
	_ = s.publish(func() error {
		if s.epoch != epoch || s.view != ViewProcessing {
			return ErrInvalidTransition
		}
		s.view = ViewCompleted
		s.flowCancel = s.sched.Schedule(s.timings.Completed, func() {
			s.expireCompleted(epoch)
		})
		return nil
	})
}

func (s *Session) expireCompleted(epoch uint64) {
	_ = s.publish(func() error {
		if s.epoch != epoch || s.view != ViewCompleted {
			return ErrInvalidTransition
		}
		s.resetLocked()
		return nil
	})
}

// ChangeOrderType abandons the current order and restarts from the
// order-type screen.
func (s *Session) ChangeOrderType() error {
	return s.publish(func() error {
		if s.view != ViewMenu {
			return ErrInvalidTransition
		}
		s.resetLocked()
		return nil
	})
}

// ---- cart operations (forwarded item intents) ----

func (s *Session) AddItem(id uint) error {
	return s.publish(func() error {
		if s.view != ViewMenu && s.view != ViewCart {
			return ErrInvalidTransition
		}
		item, err := s.catalog.Item(id)
		if err != nil {
			return err
		}
		s.cart.Add(*item)
		s.touchLocked()
		return nil
	})
}

func (s *Session) UpdateQuantity(id uint, delta int) error {
	return s.publish(func() error {
		if s.view != ViewMenu && s.view != ViewCart {
			return ErrInvalidTransition
		}
		// Unknown ids are ignored inside the ledger.
		s.cart.UpdateQuantity(id, delta)
		s.touchLocked()
		return nil
	})
}

func (s *Session) RemoveItem(id uint) error {
	return s.publish(func() error {
		if s.view != ViewMenu && s.view != ViewCart {
			return ErrInvalidTransition
		}
		s.cart.Remove(id)
		s.touchLocked()
		return nil
	})
}

// ---- filter operations ----

func (s *Session) SetCategory(category string) error {
	return s.publish(func() error {
		if s.view != ViewMenu {
			return ErrInvalidTransition
		}
		s.selection.Category = category
		// Changing the top category always widens the subcategory back
		// out so the two levels can't contradict each other.
		s.selection.Subcategory = CategoryAll
		s.touchLocked()
		return nil
	})
}

func (s *Session) SetSubcategory(sub string) error {
	return s.publish(func() error {
		if s.view != ViewMenu {
			return ErrInvalidTransition
		}
		s.selection.Subcategory = sub
		s.touchLocked()
		return nil
	})
}

func (s *Session) ToggleAllergen(tag string) error {
	return s.publish(func() error {
		if s.view != ViewMenu {
			return ErrInvalidTransition
		}
		for i, have := range s.selection.Allergies {
			if have == tag {
				s.selection.Allergies = append(
					s.selection.Allergies[:i], s.selection.Allergies[i+1:]...)
				s.touchLocked()
				return nil
			}
		}
		s.selection.Allergies = append(s.selection.Allergies, tag)
		s.touchLocked()
		return nil
	})
}

func (s *Session) SetDietMode(mode string) error {
	return s.publish(func() error {
		if s.view != ViewMenu {
			return ErrInvalidTransition
		}
		if mode != DietGeneral && mode != DietVegetarian && mode != DietVegan {
			return ErrInvalidTransition
		}
		s.selection.Diet = mode
		s.touchLocked()
		return nil
	})
}

// ResetFilters clears the allergy and diet filters. The category stays,
// matching the on-screen reset button.
func (s *Session) ResetFilters() error {
	return s.publish(func() error {
		if s.view != ViewMenu {
			return ErrInvalidTransition
		}
		s.selection.Allergies = []string{}
		s.selection.Diet = DietGeneral
		s.touchLocked()
		return nil
	})
}

func (s *Session) SetSpecialRequests(text string) error {
	return s.publish(func() error {
		if s.view != ViewMenu && s.view != ViewCart {
			return ErrInvalidTransition
		}
		s.specialRequests = text
		s.touchLocked()
		return nil
	})
}

// VisibleItems computes the filtered menu for the current selection.
func (s *Session) VisibleItems() []ItemView {
	s.mu.Lock()
	sel := s.selection
	s.mu.Unlock()

	items := VisibleItems(s.catalog, sel)
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, s.catalog.View(it))
	}
	return out
}

// ---- inactivity sub-flow ----

// Touch registers customer activity. Only meaningful while browsing the
// menu with no overlay open; elsewhere it is a harmless no-op.
func (s *Session) Touch() {
	_ = s.publish(func() error {
		s.touchLocked()
		return nil
	})
}

func (s *Session) touchLocked() {
	if s.view == ViewMenu && s.overlay == OverlayNone {
		s.restartInactivityLocked()
	}
}

func (s *Session) restartInactivityLocked() {
	s.stopInactivityLocked()
	if s.timings.Inactivity <= 0 {
		return
	}
	epoch := s.epoch
	s.inactivityCancel = s.sched.Schedule(s.timings.Inactivity, func() {
		s.inactivityFired(epoch)
	})
}

func (s *Session) stopInactivityLocked() {
	if s.inactivityCancel != nil {
		s.inactivityCancel()
		s.inactivityCancel = nil
	}
}

func (s *Session) inactivityFired(epoch uint64) {
	_ = s.publish(func() error {
		if s.epoch != epoch || s.view != ViewMenu || s.overlay != OverlayNone {
			return ErrInvalidTransition
		}
		s.overlay = OverlayInactivityPrompt
		return nil
	})
}

func (s *Session) DismissPrompt() error {
	return s.publish(func() error {
		if s.view != ViewMenu || s.overlay != OverlayInactivityPrompt {
			return ErrInvalidTransition
		}
		s.overlay = OverlayNone
		s.restartInactivityLocked()
		return nil
	})
}

// OpenVoiceAssist opens the voice help overlay, from the header button
// or from the inactivity prompt.
func (s *Session) OpenVoiceAssist() error {
	return s.publish(func() error {
		if s.view != ViewMenu || s.overlay == OverlayStaffCalling {
			return ErrInvalidTransition
		}
		s.stopInactivityLocked()
		s.overlay = OverlayVoiceAssist
		s.speechError = ""
		return nil
	})
}

func (s *Session) CloseVoiceAssist() error {
	return s.publish(func() error {
		if s.view != ViewMenu || s.overlay != OverlayVoiceAssist {
			return ErrInvalidTransition
		}
		s.pendingStop = s.recognizer
		s.listening = false
		s.overlay = OverlayNone
		s.restartInactivityLocked()
		return nil
	})
}

// CallStaff records a help request and parks the kiosk on the staff-call
// screen until it auto-resets.
func (s *Session) CallStaff() error {
	var hook func(string, View)
	var view View
	err := s.publish(func() error {
		if s.view != ViewMenu || s.overlay == OverlayStaffCalling {
			return ErrInvalidTransition
		}
		s.stopInactivityLocked()
		s.overlay = OverlayStaffCalling
		hook = s.onStaffCall
		view = s.view

		epoch := s.epoch
		s.flowCancel = s.sched.Schedule(s.timings.StaffCall, func() {
			s.staffCallExpired(epoch)
		})
		return nil
	})
	if err == nil && hook != nil {
		hook(s.ID, view)
	}
	return err
}

func (s *Session) staffCallExpired(epoch uint64) {
	_ = s.publish(func() error {
		if s.epoch != epoch || s.overlay != OverlayStaffCalling {
			return ErrInvalidTransition
		}
		s.resetLocked()
		return nil
	})
}

// ---- voice ----

// ApplyTranscript feeds a speech transcript through the allergen
// detector and merges any hits into the allergy filter.
func (s *Session) ApplyTranscript(transcript string) ([]string, error) {
	detected := DetectAllergens(transcript)
	err := s.publish(func() error {
		if s.view != ViewMenu {
			return ErrInvalidTransition
		}
		for _, tag := range detected {
			exists := false
			for _, have := range s.selection.Allergies {
				if have == tag {
					exists = true
					break
				}
			}
			if !exists {
				s.selection.Allergies = append(s.selection.Allergies, tag)
			}
		}
		s.touchLocked()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detected, nil
}

// StartListening begins one recognition attempt. A second start while
// one is in flight is rejected by the recognizer.
func (s *Session) StartListening() error {
	s.mu.Lock()
	r := s.recognizer
	view := s.view
	s.mu.Unlock()
	if r == nil {
		return ErrSpeechUnavailable
	}
	// Listening only makes sense while browsing the menu, same as
	// ApplyTranscript.
	if view != ViewMenu {
		return ErrInvalidTransition
	}

	err := r.Start(SpeechHandler{
		OnResult: func(transcript string) {
			_, _ = s.ApplyTranscript(transcript)
		},
		OnError: func(kind SpeechErrorKind) {
			_ = s.publish(func() error {
				s.speechError = speechErrorMessage(kind)
				return nil
			})
		},
		OnEnd: func() {
			_ = s.publish(func() error {
				s.listening = false
				return nil
			})
		},
	})
	if err != nil {
		return err
	}
	return s.publish(func() error {
		s.listening = true
		s.speechError = ""
		return nil
	})
}

func (s *Session) StopListening() error {
	s.mu.Lock()
	r := s.recognizer
	s.mu.Unlock()
	if r == nil {
		return ErrSpeechUnavailable
	}
	r.Stop()
	return nil
}

// ---- reset ----

// Reset forcibly returns the session to its initial state.
func (s *Session) Reset() {
	_ = s.publish(func() error {
		s.resetLocked()
		return nil
	})
}

func (s *Session) resetLocked() {
	// Bumping the epoch invalidates every timer already in flight even
	// if its cancel races with the firing callback.
	s.epoch++
	s.stopInactivityLocked()
	if s.flowCancel != nil {
		s.flowCancel()
		s.flowCancel = nil
	}
	s.pendingStop = s.recognizer
	s.view = ViewOrderType
	s.overlay = OverlayNone
	s.orderType = OrderTypeNone
	s.cart.Clear()
	s.selection = DefaultSelection()
	s.specialRequests = ""
	s.paymentMethod = ""
	s.orderNumber = ""
	s.listening = false
	s.speechError = ""
}
