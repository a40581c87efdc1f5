package users

import "adminsuite/internal/core/record"

// Field accessors. Keys are the camelCase names used by query parameters,
// filter expressions and export headers.
var (
	FieldID          = record.Field[User]{Key: "id", Kind: record.KindString, Get: func(u User) record.Value { return record.String(u.ID.String()) }}
	FieldEmail       = record.Field[User]{Key: "email", Kind: record.KindString, Get: func(u User) record.Value { return record.String(u.Email) }}
	FieldFirstName   = record.Field[User]{Key: "firstName", Kind: record.KindString, Get: func(u User) record.Value { return record.String(u.FirstName) }}
	FieldLastName    = record.Field[User]{Key: "lastName", Kind: record.KindString, Get: func(u User) record.Value { return record.String(u.LastName) }}
	FieldPhone       = record.Field[User]{Key: "phone", Kind: record.KindString, Get: func(u User) record.Value { return record.StringPtr(u.Phone) }}
	FieldAddress     = record.Field[User]{Key: "address", Kind: record.KindString, Get: func(u User) record.Value { return record.StringPtr(u.Address) }}
	FieldRole        = record.Field[User]{Key: "role", Kind: record.KindString, Get: func(u User) record.Value { return record.String(string(u.Role)) }}
	FieldPermissions = record.Field[User]{Key: "permissions", Kind: record.KindList, Get: func(u User) record.Value { return record.List(u.Permissions) }}
	FieldIsActive    = record.Field[User]{Key: "isActive", Kind: record.KindBool, Get: func(u User) record.Value { return record.Bool(u.IsActive) }}
	FieldStatus      = record.Field[User]{Key: "status", Kind: record.KindString, Get: func(u User) record.Value { return record.String(u.Status()) }}
	FieldCreatedAt   = record.Field[User]{Key: "createdAt", Kind: record.KindTime, Get: func(u User) record.Value { return record.Time(u.CreatedAt) }}
	FieldUpdatedAt   = record.Field[User]{Key: "updatedAt", Kind: record.KindTime, Get: func(u User) record.Value { return record.Time(u.UpdatedAt) }}
	FieldLastLogin   = record.Field[User]{Key: "lastLogin", Kind: record.KindTime, NullText: "Never", Get: func(u User) record.Value { return record.TimePtr(u.LastLogin) }}
)

// Schema is the user field set. The password hash is not exposed.
var Schema = record.NewSchema(
	FieldID,
	FieldEmail,
	FieldFirstName,
	FieldLastName,
	FieldPhone,
	FieldAddress,
	FieldRole,
	FieldPermissions,
	FieldIsActive,
	FieldStatus,
	FieldCreatedAt,
	FieldUpdatedAt,
	FieldLastLogin,
).
	WithSearchable("firstName", "lastName", "email").
	WithDefaultExport("id", "firstName", "lastName", "email", "phone", "address", "role", "status", "isActive", "createdAt", "lastLogin")
