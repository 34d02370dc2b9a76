package entity

import "errors"

// ErrDatabaseNotInitialized sinaliza schema drift: o banco não tem o
// shape esperado (migration não aplicada). É o ÚNICO erro que atravessa
// as camadas sem ser disfarçado; todo o resto degrada para default.
var ErrDatabaseNotInitialized = errors.New("DATABASE_NOT_INITIALIZED")

// ErrOrganizationNotFound: nenhuma linha casou com a tripla exata.
var ErrOrganizationNotFound = errors.New("organização não encontrada")
