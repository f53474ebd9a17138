// Package validation checks raw booking-form and payment-card input
// before any price is computed or transition attempted. Every check
// returns a field → message map; an empty map means valid. Nothing
// here mutates its input or touches I/O.
package validation

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"islandrides-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// BookingForm is the raw driver/booking input collected by the UI.
type BookingForm struct {
	Title         string   `validate:"required"`
	FirstName     string   `validate:"required"`
	LastName      string   `validate:"required"`
	Email         string   `validate:"required,email"`
	Phone         string   `validate:"required"`
	DateOfBirth   string   `validate:"required"`
	LicenseNumber string   `validate:"required"`
	PickupDate    string   `validate:"required"`
	DropoffDate   string   `validate:"required"`
	Amenities     []string
	AcceptTerms   bool
}

// Card is the payment input collected for a paid cancellation.
type Card struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
}

var validate = validator.New()

// requiredMessages maps struct fields to the messages shown when the
// structural tags fail.
var requiredMessages = map[string]string{
	"Title":         "Title is required",
	"FirstName":     "First name is required",
	"LastName":      "Last name is required",
	"Email":         "Email is required",
	"Phone":         "Phone number is required",
	"DateOfBirth":   "Date of birth is required",
	"LicenseNumber": "License number is required",
	"PickupDate":    "Pick-up date is required",
	"DropoffDate":   "Drop-off date is required",
}

var fieldKeys = map[string]string{
	"Title":         "title",
	"FirstName":     "firstName",
	"LastName":      "lastName",
	"Email":         "email",
	"Phone":         "phone",
	"DateOfBirth":   "dateOfBirth",
	"LicenseNumber": "licenseNumber",
	"PickupDate":    "pickupDate",
	"DropoffDate":   "dropoffDate",
}

var digitRe = regexp.MustCompile(`[0-9]`)

// ValidateBooking validates the form against the booking rules.
// Terms acceptance is only enforced when forReservation is set; a
// plain quote does not require it.
func ValidateBooking(form BookingForm, now time.Time, forReservation bool) map[string]string {
	errs := map[string]string{}

	if err := validate.Struct(form); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				key := fieldKeys[fe.StructField()]
				if fe.Tag() == "email" {
					errs[key] = "Please enter a valid email address"
					continue
				}
				errs[key] = requiredMessages[fe.StructField()]
			}
		}
	}

	if form.Phone != "" && errs["phone"] == "" {
		if len(digitRe.FindAllString(form.Phone, -1)) < 7 {
			errs["phone"] = "Please enter a valid phone number"
		}
	}

	if form.DateOfBirth != "" && errs["dateOfBirth"] == "" {
		dob, err := time.Parse(dateLayout, form.DateOfBirth)
		if err != nil {
			errs["dateOfBirth"] = "Please enter a valid date of birth"
		} else if ageAt(dob, now) < 18 {
			errs["dateOfBirth"] = "You must be at least 18 years old to rent a vehicle"
		}
	}

	validateDates(form.PickupDate, form.DropoffDate, now, errs)
	validateAmenities(form.Amenities, errs)

	if forReservation && !form.AcceptTerms {
		errs["acceptTerms"] = "You must accept the terms and conditions"
	}

	return errs
}

func validateDates(pickup, dropoff string, now time.Time, errs map[string]string) {
	var pickupDate, dropoffDate time.Time
	var err error

	if pickup != "" && errs["pickupDate"] == "" {
		pickupDate, err = time.Parse(dateLayout, pickup)
		if err != nil {
			errs["pickupDate"] = "Please enter a valid pick-up date"
		} else {
			// Date-only comparison; time of day never makes today "past".
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			if pickupDate.Before(today) {
				errs["pickupDate"] = "Pick-up date cannot be in the past"
			}
		}
	}

	if dropoff != "" && errs["dropoffDate"] == "" {
		dropoffDate, err = time.Parse(dateLayout, dropoff)
		if err != nil {
			errs["dropoffDate"] = "Please enter a valid drop-off date"
		} else if !pickupDate.IsZero() && !dropoffDate.After(pickupDate) {
			errs["dropoffDate"] = "Drop-off date must be after pick-up date"
		}
	}
}

func validateAmenities(ids []string, errs map[string]string) {
	if len(ids) == 0 {
		errs["amenities"] = "At least one amenity or 'none' is required"
		return
	}
	hasNone := false
	for _, id := range ids {
		if _, ok := domain.AmenityByID(id); !ok {
			errs["amenities"] = "Invalid amenity: " + id
			return
		}
		if id == domain.AmenityNone {
			hasNone = true
		}
	}
	if hasNone && len(ids) > 1 {
		errs["amenities"] = "'none' cannot be combined with other amenities"
	}
}

// ageAt computes full years between dob and now by exact
// year/month/day comparison, not a 365.25-day approximation.
func ageAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

var (
	cardSepRe = regexp.MustCompile(`[\s-]`)
	cardNumRe = regexp.MustCompile(`^[0-9]{16}$`)
	expiryRe  = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cardCVVRe = regexp.MustCompile(`^[0-9]{3}$`)
)

// ValidateCard checks the card details collected for a paid
// cancellation: 16 digits after stripping separators, an MM/YY expiry
// in the future, and a 3-digit CVV.
func ValidateCard(card Card, now time.Time) map[string]string {
	errs := map[string]string{}

	number := cardSepRe.ReplaceAllString(card.Number, "")
	if !cardNumRe.MatchString(number) {
		errs["cardNumber"] = "Card number must be 16 digits"
	}

	if !expiryRe.MatchString(card.Expiry) {
		errs["expiry"] = "Expiry must be in MM/YY format"
	} else {
		exp, _ := time.Parse("01/06", card.Expiry)
		// Valid through the end of the expiry month.
		endOfMonth := exp.AddDate(0, 1, 0)
		if !now.Before(endOfMonth) {
			errs["expiry"] = "Card has expired"
		}
	}

	if !cardCVVRe.MatchString(card.CVV) {
		errs["cvv"] = "CVV must be 3 digits"
	}

	return errs
}
