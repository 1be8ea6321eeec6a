package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"gedo/internal/model"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 128
	minUsernameLength = 3
	maxUsernameLength = 80
	maxEmailLength    = 120
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// validatePassword requires upper and lower case letters and a digit.
func validatePassword(p string) error {
	n := utf8.RuneCountInString(p)
	switch {
	case p == "":
		return invalid("Senha é obrigatória")
	case n < minPasswordLength:
		return invalid(fmt.Sprintf("Senha deve ter pelo menos %d caracteres", minPasswordLength))
	case n > maxPasswordLength:
		return invalid(fmt.Sprintf("Senha muito longa (máximo %d caracteres)", maxPasswordLength))
	}
	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return invalid("Senha deve conter pelo menos uma letra maiúscula")
	}
	if !lower {
		return invalid("Senha deve conter pelo menos uma letra minúscula")
	}
	if !digit {
		return invalid("Senha deve conter pelo menos um número")
	}
	return nil
}

func normalizeUsername(u string) (string, error) {
	u = strings.TrimSpace(u)
	switch {
	case u == "":
		return "", invalid("Nome de usuário é obrigatório")
	case len(u) < minUsernameLength:
		return "", invalid(fmt.Sprintf("Nome de usuário deve ter pelo menos %d caracteres", minUsernameLength))
	case len(u) > maxUsernameLength:
		return "", invalid(fmt.Sprintf("Nome de usuário muito longo (máximo %d caracteres)", maxUsernameLength))
	case !usernamePattern.MatchString(u):
		return "", invalid("Nome de usuário deve conter apenas letras, números, _ e -")
	}
	return u, nil
}

// normalizeEmail trims and lowercases e before checking its shape.
func normalizeEmail(e string) (string, error) {
	e = strings.ToLower(strings.TrimSpace(e))
	switch {
	case e == "":
		return "", invalid("Email é obrigatório")
	case !emailPattern.MatchString(e):
		return "", invalid("Formato de email inválido")
	case len(e) > maxEmailLength:
		return "", invalid(fmt.Sprintf("Email muito longo (máximo %d caracteres)", maxEmailLength))
	}
	return e, nil
}

// normalizeRole defaults an empty role to the standard user.
func normalizeRole(r string) (model.Role, error) {
	if r == "" {
		return model.RoleUser, nil
	}
	role := model.Role(r)
	if !role.Valid() {
		return "", invalid("Tipo de usuário inválido. Valores aceitos: administrador, usuario_padrao")
	}
	return role, nil
}
