package datatypes

// Builder helpers encode each category's parameter applicability: integer
// types never carry length/precision/scale, decimal types always carry
// precision and scale with a provider-specific ceiling, and so on.

// CreateStringType describes a length-bearing text type. A maxLength of -1
// marks unbounded storage (the type itself has no length parameter).
func CreateStringType(name string, aliases []string, common bool, maxLength, defaultLength int) *DataTypeInfo {
	info := &DataTypeInfo{
		Name:     name,
		Aliases:  aliases,
		Category: CategoryText,
		IsCommon: common,
	}
	if maxLength != -1 {
		info.SupportsLength = true
		info.MinLength = 1
		info.MaxLength = maxLength
		info.DefaultLength = defaultLength
	}
	return info
}

// CreateDecimalType describes a precision/scale-bearing numeric type.
func CreateDecimalType(name string, aliases []string, common bool, maxPrecision, defaultPrecision, maxScale, defaultScale int) *DataTypeInfo {
	return &DataTypeInfo{
		Name:              name,
		Aliases:           aliases,
		Category:          CategoryDecimal,
		IsCommon:          common,
		SupportsPrecision: true,
		MinPrecision:      1,
		MaxPrecision:      maxPrecision,
		DefaultPrecision:  defaultPrecision,
		SupportsScale:     true,
		MinScale:          0,
		MaxScale:          maxScale,
		DefaultScale:      defaultScale,
	}
}

// CreateIntegerType describes a parameterless integer type.
func CreateIntegerType(name string, aliases []string, common bool) *DataTypeInfo {
	return &DataTypeInfo{
		Name:     name,
		Aliases:  aliases,
		Category: CategoryInteger,
		IsCommon: common,
	}
}

// CreateDateTimeType describes a date/time type, optionally carrying a
// fractional seconds precision.
func CreateDateTimeType(name string, aliases []string, common bool, maxPrecision, defaultPrecision int) *DataTypeInfo {
	info := &DataTypeInfo{
		Name:     name,
		Aliases:  aliases,
		Category: CategoryDateTime,
		IsCommon: common,
	}
	if maxPrecision > 0 {
		info.SupportsPrecision = true
		info.MinPrecision = 0
		info.MaxPrecision = maxPrecision
		info.DefaultPrecision = defaultPrecision
	}
	return info
}

// CreateBinaryType describes a binary type. A maxLength of -1 marks
// unbounded storage.
func CreateBinaryType(name string, aliases []string, common bool, maxLength, defaultLength int) *DataTypeInfo {
	info := &DataTypeInfo{
		Name:     name,
		Aliases:  aliases,
		Category: CategoryBinary,
		IsCommon: common,
	}
	if maxLength != -1 {
		info.SupportsLength = true
		info.MinLength = 1
		info.MaxLength = maxLength
		info.DefaultLength = defaultLength
	}
	return info
}

// CreateSimpleType describes a parameterless type of any category.
func CreateSimpleType(name string, aliases []string, category Category, common bool) *DataTypeInfo {
	return &DataTypeInfo{
		Name:     name,
		Aliases:  aliases,
		Category: category,
		IsCommon: common,
	}
}

// advanced marks a type as advanced (excluded from the common listing).
func advanced(info *DataTypeInfo) *DataTypeInfo {
	info.IsAdvanced = true
	info.IsCommon = false
	return info
}
