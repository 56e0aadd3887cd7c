// Package repository define los contratos de persistencia que consume el
// flujo de social login.
//
// El esquema y el ORM de la aplicación principal (bolsa de trabajo, foros,
// bookmarks) no viven acá; este paquete sólo declara las lecturas y la única
// escritura angosta (último login) que necesita la reconciliación de identidad.
//
// Las implementaciones concretas viven en internal/store/.
//
// Arquitectura:
//
//	┌─────────────────────────────────────────────────────┐
//	│        services/social (resolver, issuer, ...)      │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌─────────────────────────────────────────────────────┐
//	│        domain/repository (interfaces)               │
//	│        AccountRepository, SocialLinkRepository      │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	              ┌─────────┴─────────┐
//	              ▼                   ▼
//	       ┌─────────────┐     ┌─────────────┐
//	       │  store/pg   │     │ store/memory│
//	       └─────────────┘     └─────────────┘
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Errores de dominio están en errors.go
package repository
