package game

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeFormPicksVariant(t *testing.T) {
	f, err := DecodeForm(8, json.RawMessage(`{"cancellationReason":"r","confirmationPhone":"p"}`))
	if err != nil {
		t.Fatal(err)
	}
	c, ok := f.(*CancellationForm)
	if !ok {
		t.Fatalf("form type = %T", f)
	}
	if c.Reason != "r" || c.Phone != "p" {
		t.Fatalf("decoded = %+v", c)
	}
	if f.Pattern() != DifficultCancellation {
		t.Fatalf("pattern = %s", f.Pattern())
	}
}

func TestDecodeFormEmptyAndInvalid(t *testing.T) {
	f, err := DecodeForm(5, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("empty privacy form: %v", err)
	}
	if _, err := DecodeForm(10, nil); !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("step 10: err = %v", err)
	}
	if _, err := DecodeForm(0, json.RawMessage(`{"email":5}`)); !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("bad json: err = %v", err)
	}
}

func TestFormValidation(t *testing.T) {
	cases := []struct {
		name string
		form Form
		ok   bool
	}{
		{"newsletter missing email", NewsletterForm{}, false},
		{"newsletter bad email", NewsletterForm{Email: "nope"}, false},
		{"newsletter ok", NewsletterForm{Email: "a@b.c"}, true},
		{"birth date format", BirthDateForm{BirthDate: "12/04/1990"}, false},
		{"offers unknown", OffersForm{Offers: "maybe"}, false},
		{"offers empty", OffersForm{}, true},
		{"card missing cvv", CardForm{CardNumber: "1", Expiry: "2"}, false},
		{"profession blank", ProfessionForm{Profession: "  "}, false},
		{"family unknown", FamilyForm{FamilyStatus: "complicated"}, false},
		{"family ok", FamilyForm{FamilyStatus: "married"}, true},
		{"captcha missing answer", CaptchaForm{ConfirmationCode: "1"}, false},
	}
	for _, tc := range cases {
		err := tc.form.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidForm) {
			t.Errorf("%s: err = %v, want ErrInvalidForm", tc.name, err)
		}
	}
}

func TestNewsletterSubscribedByDefault(t *testing.T) {
	if !(NewsletterForm{}).Subscribed() {
		t.Fatal("nil newsletter should count as subscribed")
	}
	no := false
	if (NewsletterForm{Newsletter: &no}).Subscribed() {
		t.Fatal("explicit false should unsubscribe")
	}
}

func TestCatalogueOrder(t *testing.T) {
	c := Catalogue()
	if len(c) != StepCount {
		t.Fatalf("len = %d", len(c))
	}
	if c[0].Name != "Roach Motel" || c[9].Name != "Captcha Hell" {
		t.Fatalf("order = %s .. %s", c[0].Name, c[9].Name)
	}
	for i, p := range c {
		if p.Step != i {
			t.Fatalf("entry %d has step %d", i, p.Step)
		}
	}
	if _, ok := PatternForStep(-1); ok {
		t.Fatal("step -1 should be out of range")
	}
}
