package api

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

// envelope is the outer request body of POST /method.
type envelope struct {
	Account   string         `mapstructure:"account"`
	Login     string         `mapstructure:"login"`
	Method    string         `mapstructure:"method"`
	Token     string         `mapstructure:"token"`
	Arguments map[string]any `mapstructure:"arguments"`
}

// phoneValue accepts both JSON strings and JSON numbers on the wire; the
// decode hook normalizes numbers to their digit string.
type phoneValue string

// onlineScoreArgs are the arguments of the online_score method. All fields
// are optional and nullable; the pair rule in validate() decides whether
// enough identity was supplied.
type onlineScoreArgs struct {
	Phone     phoneValue `mapstructure:"phone"`
	Email     string     `mapstructure:"email"`
	FirstName string     `mapstructure:"first_name"`
	LastName  string     `mapstructure:"last_name"`
	Birthday  string     `mapstructure:"birthday"`
	Gender    *int       `mapstructure:"gender"`
}

// clientsInterestsArgs are the arguments of the clients_interests method.
type clientsInterestsArgs struct {
	ClientIDs []int  `mapstructure:"client_ids"`
	Date      string `mapstructure:"date"`
}

// stripNulls removes keys whose value is JSON null. A null field behaves
// exactly like an absent one.
func stripNulls(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// strictIntHook rejects fractional JSON numbers where an integer is
// expected (mapstructure would silently truncate them).
func strictIntHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.Float64 {
		switch to.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f := data.(float64)
			if f != math.Trunc(f) {
				return nil, fmt.Errorf("expected an integer, got %v", f)
			}
		}
	}
	return data, nil
}

// phoneHook renders numeric phones as their digit string so a single
// validator covers both wire forms.
func phoneHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to == reflect.TypeOf(phoneValue("")) && from.Kind() == reflect.Float64 {
		f := data.(float64)
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("phone must be a valid phone number")
		}
		return phoneValue(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return data, nil
}

func newDecoder(result any) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: result,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			phoneHook,
			strictIntHook,
		),
	})
}

// decodeEnvelope parses and validates the outer request body.
func decodeEnvelope(body map[string]any) (envelope, error) {
	clean := stripNulls(body)

	for _, name := range []string{"login", "token", "method", "arguments"} {
		if _, ok := clean[name]; !ok {
			return envelope{}, fmt.Errorf("%s is required", name)
		}
	}

	var env envelope
	dec, err := newDecoder(&env)
	if err != nil {
		return envelope{}, err
	}
	if err := dec.Decode(clean); err != nil {
		return envelope{}, fmt.Errorf("invalid request: %v", err)
	}
	if env.Method == "" {
		return envelope{}, fmt.Errorf("method must be a non empty string")
	}
	return env, nil
}

// decodeOnlineScore parses the online_score arguments and returns the
// parsed fields plus the names of the supplied ones (the "has" context).
func decodeOnlineScore(args map[string]any, now time.Time) (onlineScoreArgs, []string, error) {
	clean := stripNulls(args)

	var parsed onlineScoreArgs
	dec, err := newDecoder(&parsed)
	if err != nil {
		return onlineScoreArgs{}, nil, err
	}
	if err := dec.Decode(clean); err != nil {
		return onlineScoreArgs{}, nil, fmt.Errorf("invalid arguments: %v", err)
	}

	if parsed.Phone != "" {
		if err := validatePhone(string(parsed.Phone)); err != nil {
			return onlineScoreArgs{}, nil, err
		}
	}
	if parsed.Email != "" {
		if err := validateEmail(parsed.Email); err != nil {
			return onlineScoreArgs{}, nil, err
		}
	}
	if parsed.Birthday != "" {
		if err := validateBirthday(parsed.Birthday, now); err != nil {
			return onlineScoreArgs{}, nil, err
		}
	}
	if parsed.Gender != nil {
		if err := validateGender(*parsed.Gender); err != nil {
			return onlineScoreArgs{}, nil, err
		}
	}

	has := make([]string, 0, len(clean))
	for _, name := range []string{"phone", "email", "first_name", "last_name", "birthday", "gender"} {
		if _, ok := clean[name]; ok {
			has = append(has, name)
		}
	}
	sort.Strings(has)

	return parsed, has, nil
}

// validate enforces the pair rule: the caller must identify the person by
// at least one complete pair. A zero gender ("unknown") does not complete
// the gender/birthday pair. Admin callers skip this check entirely.
func (a onlineScoreArgs) validate() bool {
	if a.Phone != "" && a.Email != "" {
		return true
	}
	if a.FirstName != "" && a.LastName != "" {
		return true
	}
	if a.Gender != nil && *a.Gender != 0 && a.Birthday != "" {
		return true
	}
	return false
}

// decodeClientsInterests parses the clients_interests arguments.
func decodeClientsInterests(args map[string]any) (clientsInterestsArgs, error) {
	clean := stripNulls(args)

	if _, ok := clean["client_ids"]; !ok {
		return clientsInterestsArgs{}, fmt.Errorf("client_ids is required")
	}

	var parsed clientsInterestsArgs
	dec, err := newDecoder(&parsed)
	if err != nil {
		return clientsInterestsArgs{}, err
	}
	if err := dec.Decode(clean); err != nil {
		return clientsInterestsArgs{}, fmt.Errorf("invalid arguments: %v", err)
	}

	if len(parsed.ClientIDs) == 0 {
		return clientsInterestsArgs{}, fmt.Errorf("client_ids must be a non empty list of integers")
	}
	if parsed.Date != "" {
		if _, err := parseDate("date", parsed.Date); err != nil {
			return clientsInterestsArgs{}, err
		}
	}
	return parsed, nil
}
