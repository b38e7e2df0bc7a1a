package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateRecord = errors.New("Duplicate record")
var ErrAccountNotFound = errors.New("Account not found")
var ErrInvalidAmount = errors.New("Invalid amount")
var ErrInsufficientFunds = errors.New("Insufficient funds")
var ErrConcurrencyConflict = errors.New("Concurrent update conflict")
var ErrInvalidCredentials = errors.New("Invalid credentials")
