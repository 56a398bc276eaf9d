package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ExpenseTracker/models"
	"ExpenseTracker/pkg/messages"
)

var errMalformedBody = errors.New("malformed request body")

// payload is a decoded request body that keeps track of which keys were sent.
type payload map[string]any

// readPayload decodes a JSON or form body. An empty body yields an empty payload.
func readPayload(c *gin.Context) (payload, error) {
	p := payload{}
	ct := c.ContentType()
	if ct == gin.MIMEPOSTForm || ct == gin.MIMEMultipartPOSTForm {
		if err := c.Request.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, errMalformedBody
		}
		for k, vs := range c.Request.PostForm {
			if len(vs) > 0 {
				p[k] = vs[0]
			}
		}
		return p, nil
	}

	if c.Request.Body == nil {
		return p, nil
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return payload{}, nil
		}
		return nil, errMalformedBody
	}
	if p == nil {
		p = payload{}
	}
	return p, nil
}

func (p payload) has(key string) bool {
	_, ok := p[key]
	return ok
}

// str returns the value as text; numbers are rendered as sent.
func (p payload) str(key string) string {
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (p payload) id(key string) (uint, bool) {
	n, err := strconv.ParseUint(p.str(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func (p payload) amount(key string) (float64, bool) {
	f, err := strconv.ParseFloat(p.str(key), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (p payload) date(key string) (time.Time, bool) {
	s := p.str(key)
	for _, layout := range []string{models.DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// isEmpty follows the loose notion of emptiness the API clients rely on:
// null, "", "0", 0, false and empty collections are all empty.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(x)
		return s == "" || s == "0"
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case bool:
		return !x
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// fieldOrder is the order in which empty fields are reported.
var fieldOrder = []string{"id", "name", "title", "amount", "date", "category", "description"}

// firstEmptyField returns the first present-but-empty key.
func (p payload) firstEmptyField() (string, bool) {
	for _, k := range fieldOrder {
		if v, ok := p[k]; ok && isEmpty(v) {
			return k, true
		}
	}
	rest := make([]string, 0, len(p))
	for k := range p {
		if !slices.Contains(fieldOrder, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	for _, k := range rest {
		if isEmpty(p[k]) {
			return k, true
		}
	}
	return "", false
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

func serverError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}

func success(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func emptyFieldResponse(c *gin.Context, p payload) bool {
	if field, found := p.firstEmptyField(); found {
		badRequest(c, messages.ForField(field))
		return true
	}
	return false
}
