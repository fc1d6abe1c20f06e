package header

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-email-premailer/message/header/param"
)

var (
	// ErrNoSuchField is returned when the named field is not in the header.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned when the field exists but the
	// requested parameter is not set on it.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned along with the first value when a field that
	// should be singular appears more than once.
	ErrManyFields = errors.New("many header fields found")

	// ErrWrongAddressType is returned by the address setters when given
	// something other than a string or an addr.Address.
	ErrWrongAddressType = errors.New("incorrect address type during write")
)

// Standard field names.
const (
	Cc                      = "Cc"
	ContentDisposition      = "Content-disposition"
	ContentTransferEncoding = "Content-transfer-encoding"
	ContentType             = "Content-type"
	Date                    = "Date"
	From                    = "From"
	MIMEVersion             = "Mime-version"
	MessageID               = "Message-id"
	Subject                 = "Subject"
	To                      = "To"
)

// UnixDateWithEarlyYear is a date layout seen in the wild that the other
// parsers miss.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// Header wraps Base with typed accessors. Parsed values are cached by
// lowercased field name. Any write through Set or Delete drops the cached
// value for that name.
//
// Getters return ErrNoSuchField when the field is absent.
type Header struct {
	Base

	// valueCache holds immutable parsed values only.
	valueCache map[string]any
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	vc := make(map[string]any, len(h.valueCache))
	for k, v := range h.valueCache {
		vc[k] = v
	}

	return &Header{
		Base:       *h.Base.Clone(),
		valueCache: vc,
	}
}

func (h *Header) getValue(name string) (any, bool) {
	v, found := h.valueCache[strings.ToLower(name)]
	return v, found
}

func (h *Header) setValue(name string, value any) {
	if h.valueCache == nil {
		h.valueCache = make(map[string]any, h.Len())
	}
	h.valueCache[strings.ToLower(name)] = value
}

func (h *Header) clearValue(name string) {
	delete(h.valueCache, strings.ToLower(name))
}

// Get returns the body of the named field. With more than one such field, the
// first body is returned with ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	b := h.GetField(ixs[0]).Body()
	if len(ixs) > 1 {
		return b, ErrManyFields
	}

	return b, nil
}

// GetAll returns the bodies of every field with the given name.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}

	return bs, nil
}

// Set replaces every field with the given name by a single field. An existing
// first occurrence keeps its position. Otherwise the field is appended.
func (h *Header) Set(name, body string) {
	h.clearValue(name)

	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		h.InsertBeforeField(h.Len(), name, body)
		return
	}

	for i := len(ixs) - 1; i > 0; i-- {
		_ = h.DeleteField(ixs[i])
	}

	f := h.GetField(ixs[0])
	f.SetName(name)
	f.SetBody(body)
}

// Delete removes every field with the given name. It returns ErrNoSuchField
// if there were none.
func (h *Header) Delete(name string) error {
	h.clearValue(name)

	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return ErrNoSuchField
	}

	for i := len(ixs) - 1; i >= 0; i-- {
		_ = h.DeleteField(ixs[i])
	}

	return nil
}

// ParseTime parses a date the way RFC 5322 says to, then falls back to
// dateparse and a few odd layouts seen in real mail.
func ParseTime(body string) (time.Time, error) {
	if t, err := mail.ParseDate(body); err == nil {
		return t, nil
	}

	if t, err := dateparse.ParseAny(body); err == nil {
		return t, nil
	}

	if t, err := time.Parse(UnixDateWithEarlyYear, body); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime returns the named field parsed with ParseTime.
func (h *Header) GetTime(name string) (time.Time, error) {
	if v, found := h.getValue(name); found {
		if t, isTime := v.(time.Time); isTime {
			return t, nil
		}
	}

	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}

	t, err := ParseTime(body)
	if err != nil {
		return t, err
	}

	h.setValue(name, t)
	return t, nil
}

// SetTime sets the named field to t formatted with time.RFC1123Z.
func (h *Header) SetTime(name string, t time.Time) {
	h.Set(name, t.Format(time.RFC1123Z))
	h.setValue(name, t)
}

// ParseAddressList parses an address list strictly with go-addr and falls back
// to a forgiving split on commas when the strict parse fails. It returns some
// result for any input.
func ParseAddressList(body string) addr.AddressList {
	al, err := addr.ParseEmailAddressList(body)
	if err != nil {
		al = parseEmailAddressList(body)
	}
	return al
}

// GetAddressList returns the named field parsed with ParseAddressList.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	if v, found := h.getValue(name); found {
		if al, isAddrList := v.(addr.AddressList); isAddrList {
			return al, nil
		}
	}

	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	al := ParseAddressList(body)
	h.setValue(name, al)
	return al, nil
}

// SetAddressList sets the named field to the given addresses.
func (h *Header) SetAddressList(name string, as ...addr.Address) {
	al := addr.AddressList(as)
	h.Set(name, al.String())
	h.setValue(name, al)
}

func (h *Header) setAddress(name string, as []any) error {
	var al addr.AddressList
	for _, a := range as {
		switch v := a.(type) {
		case string:
			add, err := addr.ParseEmailAddress(v)
			if err != nil {
				return err
			}
			al = append(al, add)
		case addr.Address:
			al = append(al, v)
		default:
			return ErrWrongAddressType
		}
	}
	h.SetAddressList(name, al...)
	return nil
}

// GetParamValue returns the named field parsed as a param.Value. The result is
// a copy and may be changed freely.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	if v, found := h.getValue(name); found {
		if pv, isPV := v.(*param.Value); isPV && pv != nil {
			return pv.Clone(), nil
		}
	}

	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}

	pv, err := param.Parse(body)
	if err != nil {
		return nil, err
	}

	h.setValue(name, pv)
	return pv.Clone(), nil
}

// SetParamValue sets the named field to the serialized pv.
func (h *Header) SetParamValue(name string, pv *param.Value) {
	h.Set(name, pv.String())
	h.setValue(name, pv.Clone())
}

func (h *Header) getParamValueValue(name string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}
	return pv.Value(), nil
}

// setParamValueValue changes the primary value and keeps any parameters. If
// the field is missing or unparseable it is replaced outright.
func (h *Header) setParamValueValue(name, v string) {
	ixs := h.GetIndexesNamed(name)
	for i := len(ixs) - 1; i > 0; i-- {
		_ = h.DeleteField(ixs[i])
	}
	h.clearValue(name)

	pv, err := h.GetParamValue(name)
	if err != nil {
		pv = param.New(v)
	} else {
		pv = param.Modify(pv, param.Change(v))
	}

	h.SetParamValue(name, pv)
}

func (h *Header) getParamValueParam(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}

	if v := pv.Parameter(p); v != "" {
		return v, nil
	}

	return "", ErrNoSuchFieldParameter
}

// setParamValueParam sets one parameter. The field must already exist.
func (h *Header) setParamValueParam(name, p, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return err
	}

	h.SetParamValue(name, param.Modify(pv, param.Set(p, v)))
	return nil
}

// GetContentType returns Content-type as a param.Value.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// SetContentType replaces Content-type.
func (h *Header) SetContentType(v *param.Value) {
	h.SetParamValue(ContentType, v)
}

// GetMediaType returns the media type of Content-type, such as "text/html".
func (h *Header) GetMediaType() (string, error) {
	return h.getParamValueValue(ContentType)
}

// SetMediaType sets the media type of Content-type, creating the field if
// needed and keeping existing parameters.
func (h *Header) SetMediaType(mt string) {
	h.setParamValueValue(ContentType, mt)
}

// GetCharset returns the charset parameter of Content-type.
func (h *Header) GetCharset() (string, error) {
	return h.getParamValueParam(ContentType, param.Charset)
}

// SetCharset sets the charset parameter of Content-type. Content-type must
// already be set.
func (h *Header) SetCharset(c string) error {
	return h.setParamValueParam(ContentType, param.Charset, c)
}

// GetBoundary returns the boundary parameter of Content-type.
func (h *Header) GetBoundary() (string, error) {
	return h.getParamValueParam(ContentType, param.Boundary)
}

// SetBoundary sets the boundary parameter of Content-type. Content-type must
// already be set.
func (h *Header) SetBoundary(b string) error {
	return h.setParamValueParam(ContentType, param.Boundary, b)
}

// GetContentDisposition returns Content-disposition as a param.Value.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

// SetContentDisposition replaces Content-disposition.
func (h *Header) SetContentDisposition(v *param.Value) {
	h.SetParamValue(ContentDisposition, v)
}

// GetPresentation returns the disposition of Content-disposition, usually
// "inline" or "attachment".
func (h *Header) GetPresentation() (string, error) {
	return h.getParamValueValue(ContentDisposition)
}

// SetPresentation sets the disposition of Content-disposition, keeping any
// parameters.
func (h *Header) SetPresentation(d string) {
	h.setParamValueValue(ContentDisposition, d)
}

// GetFilename returns the filename parameter of Content-disposition.
func (h *Header) GetFilename() (string, error) {
	return h.getParamValueParam(ContentDisposition, param.Filename)
}

// SetFilename sets the filename parameter of Content-disposition, which must
// already be set.
func (h *Header) SetFilename(f string) error {
	return h.setParamValueParam(ContentDisposition, param.Filename, f)
}

// GetTransferEncoding returns Content-transfer-encoding.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.Get(ContentTransferEncoding)
}

// SetTransferEncoding replaces Content-transfer-encoding.
func (h *Header) SetTransferEncoding(b string) {
	h.Set(ContentTransferEncoding, b)
}

// GetDate returns Date parsed with ParseTime.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// SetDate sets Date.
func (h *Header) SetDate(d time.Time) {
	h.SetTime(Date, d)
}

// GetSubject returns Subject.
func (h *Header) GetSubject() (string, error) {
	return h.Get(Subject)
}

// SetSubject sets Subject.
func (h *Header) SetSubject(s string) {
	h.Set(Subject, s)
}

// GetMessageID returns Message-id.
func (h *Header) GetMessageID() (string, error) {
	return h.Get(MessageID)
}

// GetTo returns To as an address list.
func (h *Header) GetTo() (addr.AddressList, error) {
	return h.GetAddressList(To)
}

// SetTo sets To from strings or addr.Address values.
func (h *Header) SetTo(a ...any) error {
	return h.setAddress(To, a)
}

// GetCc returns Cc as an address list.
func (h *Header) GetCc() (addr.AddressList, error) {
	return h.GetAddressList(Cc)
}

// SetCc sets Cc from strings or addr.Address values.
func (h *Header) SetCc(a ...any) error {
	return h.setAddress(Cc, a)
}

// GetFrom returns From as an address list.
func (h *Header) GetFrom() (addr.AddressList, error) {
	return h.GetAddressList(From)
}

// SetFrom sets From from strings or addr.Address values.
func (h *Header) SetFrom(a ...any) error {
	return h.setAddress(From, a)
}

// parseEmailAddressList is the forgiving fallback for ParseAddressList. Each
// comma separated chunk has its parenthesized comments pulled out. The last
// remaining word is the address and anything before it is the display name.
// Groups are not recognized.
func parseEmailAddressList(v string) addr.AddressList {
	chunks := strings.Split(v, ",")
	as := make(addr.AddressList, 0, len(chunks))
	for _, orig := range chunks {
		mb, com := splitComments(orig)

		words := strings.Fields(mb)
		if len(words) == 0 {
			continue
		}

		email := words[len(words)-1]
		dn := strings.Join(words[:len(words)-1], " ")
		email = strings.TrimSuffix(strings.TrimPrefix(email, "<"), ">")

		local, domain := email, ""
		if i := strings.LastIndex(email, "@"); i > -1 {
			local, domain = email[:i], email[i+1:]
		}
		spec := addr.NewAddrSpecParsed(local, domain, email)

		mailbox, err := addr.NewMailboxParsed(dn, spec, strings.TrimSpace(com), orig)
		if err != nil {
			mailbox, _ = addr.NewMailboxParsed(dn, spec, "", orig)
		}

		as = append(as, mailbox)
	}

	return as
}

// splitComments separates parenthesized comments, which may nest, from the
// rest of s.
func splitComments(s string) (clean, comment string) {
	var cb, mb strings.Builder
	depth := 0
	for _, c := range s {
		switch {
		case c == '(':
			depth++
			if depth > 1 {
				mb.WriteRune(c)
			}
		case c == ')' && depth > 0:
			depth--
			if depth > 0 {
				mb.WriteRune(c)
			}
		case depth > 0:
			mb.WriteRune(c)
		default:
			cb.WriteRune(c)
		}
	}
	return cb.String(), mb.String()
}
