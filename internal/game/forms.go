package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Form is the input of one step. Each pattern has its own concrete type.
type Form interface {
	Pattern() Pattern
	Validate() error
}

type NewsletterForm struct {
	Email string `json:"email"`
	// Newsletter is pre-checked: nil means the participant left it ticked.
	Newsletter *bool `json:"newsletter,omitempty"`
}

type BirthDateForm struct {
	BirthDate string `json:"birthDate"`
}

type OffersForm struct {
	Phone  string `json:"phone"`
	Offers string `json:"offers"`
}

type AddressForm struct {
	Address string `json:"address"`
}

type CardForm struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// PrivacyForm toggles default to sharing; a nil field counts as checked.
type PrivacyForm struct {
	ShareEmail    *bool `json:"shareEmail,omitempty"`
	ShareLocation *bool `json:"shareLocation,omitempty"`
	ShareActivity *bool `json:"shareActivity,omitempty"`
	ShareContacts *bool `json:"shareContacts,omitempty"`
	ShareUsage    *bool `json:"shareUsage,omitempty"`
	AcceptCookies *bool `json:"acceptCookies,omitempty"`
}

type ProfessionForm struct {
	Profession string `json:"profession"`
	Choice     string `json:"choice"`
}

type FamilyForm struct {
	FamilyStatus string `json:"familyStatus"`
}

type CancellationForm struct {
	Reason string `json:"cancellationReason"`
	Phone  string `json:"confirmationPhone"`
}

type CaptchaForm struct {
	ConfirmationCode string `json:"confirmationCode"`
	Answer           string `json:"captchaAnswer"`
}

func (NewsletterForm) Pattern() Pattern   { return RoachMotel }
func (BirthDateForm) Pattern() Pattern    { return BaitAndSwitch }
func (OffersForm) Pattern() Pattern       { return Confirmshaming }
func (AddressForm) Pattern() Pattern      { return HiddenCosts }
func (CardForm) Pattern() Pattern         { return ForcedContinuity }
func (PrivacyForm) Pattern() Pattern      { return PrivacyZuckering }
func (ProfessionForm) Pattern() Pattern   { return Misdirection }
func (FamilyForm) Pattern() Pattern       { return FakeUrgency }
func (CancellationForm) Pattern() Pattern { return DifficultCancellation }
func (CaptchaForm) Pattern() Pattern      { return CaptchaHell }

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidForm, field)
	}
	return nil
}

func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %s", ErrInvalidForm, field, strings.Join(allowed, ", "))
}

func (f NewsletterForm) Validate() error {
	if err := required("email", f.Email); err != nil {
		return err
	}
	if !strings.Contains(f.Email, "@") {
		return fmt.Errorf("%w: email is not a valid address", ErrInvalidForm)
	}
	return nil
}

// Subscribed reports whether the participant stays on the list.
func (f NewsletterForm) Subscribed() bool {
	return f.Newsletter == nil || *f.Newsletter
}

func (f BirthDateForm) Validate() error {
	if err := required("birthDate", f.BirthDate); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", f.BirthDate); err != nil {
		return fmt.Errorf("%w: birthDate must be YYYY-MM-DD", ErrInvalidForm)
	}
	return nil
}

func (f OffersForm) Validate() error {
	return oneOf("offers", f.Offers, "", "yes", "no")
}

func (f AddressForm) Validate() error {
	return required("address", f.Address)
}

func (f CardForm) Validate() error {
	if err := required("cardNumber", f.CardNumber); err != nil {
		return err
	}
	if err := required("expiry", f.Expiry); err != nil {
		return err
	}
	return required("cvv", f.CVV)
}

func (f PrivacyForm) Validate() error { return nil }

// Shared lists the keys of every toggle left enabled, in display order.
func (f PrivacyForm) Shared() []string {
	var keys []string
	for _, t := range privacyToggles {
		v := t.get(f)
		if v == nil || *v {
			keys = append(keys, t.Key)
		}
	}
	return keys
}

func (f ProfessionForm) Validate() error {
	if err := required("profession", f.Profession); err != nil {
		return err
	}
	return oneOf("choice", f.Choice, "", "cancel", "continue")
}

func (f FamilyForm) Validate() error {
	if err := required("familyStatus", f.FamilyStatus); err != nil {
		return err
	}
	return oneOf("familyStatus", f.FamilyStatus, familyStatuses...)
}

func (f CancellationForm) Validate() error {
	if err := required("cancellationReason", f.Reason); err != nil {
		return err
	}
	return required("confirmationPhone", f.Phone)
}

func (f CaptchaForm) Validate() error {
	if err := required("confirmationCode", f.ConfirmationCode); err != nil {
		return err
	}
	return required("captchaAnswer", f.Answer)
}

var familyStatuses = []string{"single", "married", "divorced", "widowed"}

// DecodeForm decodes raw into the form type of step. Empty input decodes as an empty form.
func DecodeForm(step int, raw json.RawMessage) (Form, error) {
	p, ok := PatternForStep(step)
	if !ok {
		return nil, fmt.Errorf("%w: step %d out of range", ErrInvalidForm, step)
	}

	var form Form
	switch p {
	case RoachMotel:
		form = &NewsletterForm{}
	case BaitAndSwitch:
		form = &BirthDateForm{}
	case Confirmshaming:
		form = &OffersForm{}
	case HiddenCosts:
		form = &AddressForm{}
	case ForcedContinuity:
		form = &CardForm{}
	case PrivacyZuckering:
		form = &PrivacyForm{}
	case Misdirection:
		form = &ProfessionForm{}
	case FakeUrgency:
		form = &FamilyForm{}
	case DifficultCancellation:
		form = &CancellationForm{}
	case CaptchaHell:
		form = &CaptchaForm{}
	}

	if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if err := json.Unmarshal(raw, form); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
	}
	return form, nil
}
