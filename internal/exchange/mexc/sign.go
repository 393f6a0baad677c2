package mexc

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Sign HMAC-SHA256签名
// 参数按key字母序拼接成 k=v&k=v，空值跳过，再用secret签名
func Sign(secret string, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v := fmt.Sprintf("%v", params[k])
		if v == "" {
			continue
		}
		pairs = append(pairs, k+"="+v)
	}
	query := strings.Join(pairs, "&")

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}
