package vetter_test

import (
	"fmt"

	"github.com/Azhovan/vetter"
)

// Example demonstrates validating a whole record against a schema.
func Example() {
	schema := vetter.Schema{
		{Name: "email", Rules: vetter.Rules{vetter.Presence: true, vetter.Format: `^[^@]+@[^@]+$`}},
		{Name: "age", Rules: vetter.Rules{vetter.Coerce: "int", vetter.Size: vetter.Between(0, 120)}},
		{Name: "role", Rules: vetter.Rules{vetter.Inclusion: []string{"admin", "user"}}},
	}

	rec := vetter.NewMapRecord(map[string]any{
		"email": "ada@example.com",
		"age":   "42",
		"role":  "guest",
	})

	err := vetter.New(schema).Validate(rec)
	fmt.Println(err)

	age, _ := rec.Value("age")
	fmt.Printf("age: %v (%T)\n", age, age)

	// Output:
	// validation failed: 1 error
	//   - role: inclusion (value is not in the allowed collection)
	// age: 42 (int)
}

// ExampleAttribute_Validate demonstrates a single-attribute pass with
// coercion writing through to the record.
func ExampleAttribute_Validate() {
	rec := vetter.NewMapRecord(map[string]any{"age": "42"})

	attr := vetter.NewAttribute(rec, "age", vetter.Rules{
		vetter.Coerce: "int",
		vetter.Size:   vetter.Between(0, 120),
	})
	if err := attr.Validate(); err != nil {
		fmt.Println("bad declaration:", err)
		return
	}

	fmt.Println("failures:", len(rec.Failures().All()))
	age, _ := rec.Value("age")
	fmt.Printf("stored: %v (%T)\n", age, age)

	// Output:
	// failures: 0
	// stored: 42 (int)
}

// ExampleSchemaOf demonstrates declaring rules with struct tags.
func ExampleSchemaOf() {
	type Signup struct {
		Email                string `vet:"required,format:^[^@]+@[^@]+$"`
		Password             string `vet:"required,size:8..64,confirmed"`
		PasswordConfirmation string
	}

	schema, err := vetter.SchemaOf(Signup{})
	if err != nil {
		fmt.Println(err)
		return
	}

	rec, err := vetter.RecordOf(Signup{
		Email:                "ada@example.com",
		Password:             "hunter2hunter2",
		PasswordConfirmation: "hunter3",
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(vetter.New(schema).Validate(rec))

	// Output:
	// validation failed: 1 error
	//   - password: confirmation (value does not match its confirmation)
}
