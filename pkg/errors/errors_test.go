package errors

import (
	"errors"
	"strings"
	"testing"

	"tradegate/pkg/errors/ecode"
)

func TestDecodeErr(t *testing.T) {
	code, msg := DecodeErr(nil)
	if code != ecode.Success || msg == "" {
		t.Errorf("DecodeErr(nil) = %d, %q", code, msg)
	}

	err := WithCode(ecode.ValidateErr, "缺少symbol")
	code, msg = DecodeErr(err)
	if code != ecode.ValidateErr || msg != "缺少symbol" {
		t.Errorf("DecodeErr = %d, %q", code, msg)
	}

	// 普通error归为Unknown
	code, _ = DecodeErr(errors.New("boom"))
	if code != ecode.Unknown {
		t.Errorf("DecodeErr plain = %d, want Unknown", code)
	}
}

func TestDecodeErrKeepsCause(t *testing.T) {
	cause := errors.New("mexc error code=2005 insufficient margin")
	err := Wrap(cause, ecode.ExchangeErr, "获取账户余额失败")

	code, msg := DecodeErr(err)
	if code != ecode.ExchangeErr {
		t.Errorf("code = %d, want ExchangeErr", code)
	}
	// 底层错误原因不允许被提示信息吞掉
	if !strings.Contains(msg, cause.Error()) {
		t.Errorf("msg = %q, want it to contain %q", msg, cause.Error())
	}
	if !strings.Contains(msg, "获取账户余额失败") {
		t.Errorf("msg = %q, want it to keep the local hint", msg)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("network timeout")
	err := Wrap(cause, ecode.ExchangeErr, "获取账户余额失败")

	if !errors.Is(err, cause) {
		t.Error("wrapped error must preserve the cause chain")
	}
	if Code(err) != ecode.ExchangeErr {
		t.Errorf("Code = %d, want ExchangeErr", Code(err))
	}
}
