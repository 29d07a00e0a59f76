package gorm

import (
	"errors"
	"strings"
	"testing"
)

func TestDSNSSLMode(t *testing.T) {
	plain := dsn("db", "5432", "chat", "pw", "chats", false)
	if !strings.Contains(plain, "sslmode=disable") {
		t.Errorf("expected sslmode=disable, got %s", plain)
	}

	secure := dsn("db", "5432", "chat", "pw", "chats", true)
	if !strings.Contains(secure, "sslmode=require") {
		t.Errorf("expected sslmode=require, got %s", secure)
	}
	if !strings.Contains(secure, "host=db") || !strings.Contains(secure, "dbname=chats") {
		t.Errorf("expected host and dbname in dsn, got %s", secure)
	}
}

func TestConnectToPostgreSQLRequiresConnectionInfo(t *testing.T) {
	_, err := ConnectToPostgreSQL("", "", "user", "pass", "", false)
	if !errors.Is(err, ErrMissingConnectionInfo) {
		t.Errorf("expected ErrMissingConnectionInfo, got %v", err)
	}
}
