package private

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/antonholmquist/jason"
	"github.com/fxpgr/stonk/models"
	"github.com/pkg/errors"
)

func GetParamHmacSHA256HexSign(secret, params string) (string, error) {
	mac := hmac.New(sha256.New, []byte(secret))
	_, err := mac.Write([]byte(params))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// exchangeError turns a non-2xx response into an ExchangeError, keeping
// the body verbatim.
func exchangeError(op string, statusCode int, body []byte) *models.Error {
	e := models.NewError(models.ExchangeError, op,
		errors.Errorf("HttpStatusCode:%d ,Desc:%s", statusCode, string(body)))
	e.StatusCode = statusCode
	e.Payload = body

	json, err := jason.NewObjectFromBytes(body)
	if err != nil {
		e.Message = http.StatusText(statusCode)
		return e
	}
	if code, err := json.GetInt64("code"); err == nil {
		e.Code = code
	}
	if msg, err := json.GetString("msg"); err == nil {
		e.Message = msg
	}
	return e
}
