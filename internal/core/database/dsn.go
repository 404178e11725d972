package database

import (
	"fmt"
	"net/url"
	"strings"
)

// maskDSN user:pass@... → user:****@...
func maskDSN(dsn string) string {
	at := strings.Index(dsn, "@")
	if at <= 0 {
		return dsn
	}
	colon := strings.Index(dsn[:at], ":")
	if colon <= 0 {
		return dsn
	}
	return dsn[:colon+1] + "****" + dsn[at:]
}

// jdbc 参数名 → go-sql-driver 参数名
var jdbcRename = map[string]string{
	"characterEncoding": "charset",
	"serverTimezone":    "loc",
}

// go-sql-driver 不认识的 jdbc 参数
var jdbcDrop = []string{"useUnicode", "zeroDateTimeBehavior"}

// normalizeMySQLDSN 把 mysql:// 或 jdbc:mysql:// 形式转成 user:pass@tcp(host)/db?...
// 已是驱动原生格式的 DSN 原样返回
func normalizeMySQLDSN(input, user, pass string) string {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return strings.TrimSpace(input)
	}
	u, err := url.Parse(in)
	if err != nil {
		return in
	}
	q := u.Query()

	var urlUser, urlPass string
	if u.User != nil {
		urlUser = u.User.Username()
		urlPass, _ = u.User.Password()
	}
	urlUser = firstNonEmpty(user, q.Get("user"), urlUser)
	urlPass = firstNonEmpty(pass, q.Get("password"), urlPass)
	q.Del("user")
	q.Del("password")

	for from, to := range jdbcRename {
		if v := q.Get(from); v != "" && q.Get(to) == "" {
			q.Set(to, v)
		}
		q.Del(from)
	}
	for _, k := range jdbcDrop {
		q.Del(k)
	}
	if v := strings.ToLower(q.Get("useSSL")); v != "" {
		q.Set("tls", sslToTLS(v))
		q.Del("useSSL")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := ""
	switch {
	case urlUser != "" && urlPass != "":
		cred = urlUser + ":" + urlPass + "@"
	case urlUser != "":
		cred = urlUser + "@"
	case urlPass != "":
		cred = ":" + urlPass + "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}

func sslToTLS(v string) string {
	switch v {
	case "true", "1":
		return "true"
	case "skip-verify", "preferred":
		return v
	}
	return "false"
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
