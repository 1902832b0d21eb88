// Package token manages the QR tokens customers present at businesses.
//
// A token is a small JSON document (type, customer identity, random token id and,
// for single-business cards, the business id) that is printed inside a QR code.
// The registry keeps one record per token id so tokens can be revoked without
// touching the printed payload.
package token
