package database

import (
	"fmt"

	"chunkdb/pkg/commands"
	"chunkdb/pkg/execution/aggregation"
	"chunkdb/pkg/execution/join"
	"chunkdb/pkg/execution/mutation"
	"chunkdb/pkg/execution/query"
	"chunkdb/pkg/execution/scan"
	"chunkdb/pkg/execution/sort"
	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
	"chunkdb/pkg/value"
)

// dispatch routes a validated statement to its executor.
func (db *Database) dispatch(stmt commands.Statement) (QueryResult, error) {
	switch s := stmt.(type) {
	case *commands.CreateTableStatement:
		return db.executeCreateTable(s)
	case *commands.InsertStatement:
		return db.executeInsert(s)
	case *commands.ShowColumnsStatement:
		return db.executeShowColumns(s)
	case *commands.SortStatement:
		return db.executeSort(s)
	case *commands.UpdateStatement:
		return db.executeUpdate(s)
	case *commands.DeleteStatement:
		return db.executeDelete(s)
	case *commands.GroupStatement:
		return db.executeGroup(s)
	case *commands.FilterStatement:
		return db.executeFilter(s)
	case *commands.JoinStatement:
		return db.executeJoin(s)
	case *commands.AggregateStatement:
		return db.executeAggregate(s)
	default:
		return QueryResult{}, fmt.Errorf("unsupported statement type %s", stmt.GetType())
	}
}

func (db *Database) executeCreateTable(s *commands.CreateTableStatement) (QueryResult, error) {
	schema, err := row.NewSchema(s.TableName, s.Columns)
	if err != nil {
		return QueryResult{}, err
	}

	if _, err := db.catalog.CreateTable(schema); err != nil {
		return QueryResult{}, err
	}

	return QueryResult{
		Success: true,
		Message: fmt.Sprintf("table %s created with %d column(s)", s.TableName, len(s.Columns)),
	}, nil
}

func (db *Database) executeInsert(s *commands.InsertStatement) (QueryResult, error) {
	tf, err := db.catalog.GetTable(s.TableName)
	if err != nil {
		return QueryResult{}, err
	}

	plan, err := mutation.NewInsertPlan(tf, s.Values)
	if err != nil {
		return QueryResult{}, err
	}

	res, err := plan.Execute()
	if err != nil {
		return QueryResult{}, err
	}
	return db.formatter.FormatDML(res), nil
}

func (db *Database) executeShowColumns(s *commands.ShowColumnsStatement) (QueryResult, error) {
	tf, err := db.catalog.GetTable(s.TableName)
	if err != nil {
		return QueryResult{}, err
	}

	ts, err := scan.NewTableScan(tf)
	if err != nil {
		return QueryResult{}, err
	}

	var source iterator.RowIterator = ts
	if !s.All {
		project, err := query.NewProject(s.Columns, ts)
		if err != nil {
			return QueryResult{}, err
		}
		source = project
	}
	return db.formatter.FormatRows(source)
}

// executeSort runs the external sort and persists the merged output as
// the table's new on-disk version before returning it.
func (db *Database) executeSort(s *commands.SortStatement) (QueryResult, error) {
	tf, err := db.catalog.GetTable(s.TableName)
	if err != nil {
		return QueryResult{}, err
	}

	ts, err := scan.NewTableScan(tf)
	if err != nil {
		return QueryResult{}, err
	}

	sortOp, err := sort.NewSort(ts, s.Column, true, db.chunkCap)
	if err != nil {
		return QueryResult{}, err
	}

	if err := sortOp.Open(); err != nil {
		return QueryResult{}, err
	}
	defer sortOp.Close()

	written, err := mutation.Persist(tf, sortOp)
	if err != nil {
		return QueryResult{}, err
	}

	rescan, err := scan.NewTableScan(tf)
	if err != nil {
		return QueryResult{}, err
	}

	result, err := db.formatter.FormatRows(rescan)
	if err != nil {
		return QueryResult{}, err
	}
	result.RowsAffected = written
	result.Message = fmt.Sprintf("%d row(s) sorted by %s", written, s.Column)
	return result, nil
}

func (db *Database) executeUpdate(s *commands.UpdateStatement) (QueryResult, error) {
	tf, err := db.catalog.GetTable(s.TableName)
	if err != nil {
		return QueryResult{}, err
	}

	plan, err := mutation.NewUpdatePlan(tf, s.MatchColumn, s.MatchValue, s.Target, s.NewValue)
	if err != nil {
		return QueryResult{}, err
	}

	res, err := plan.Execute()
	if err != nil {
		return QueryResult{}, err
	}
	return db.formatter.FormatDML(res), nil
}

func (db *Database) executeDelete(s *commands.DeleteStatement) (QueryResult, error) {
	tf, err := db.catalog.GetTable(s.TableName)
	if err != nil {
		return QueryResult{}, err
	}

	plan, err := mutation.NewDeletePlan(tf, s.Column, s.Value)
	if err != nil {
		return QueryResult{}, err
	}

	res, err := plan.Execute()
	if err != nil {
		return QueryResult{}, err
	}
	return db.formatter.FormatDML(res), nil
}

// executeGroup sorts the table on the grouping column so equal keys are
// adjacent, then counts group members in a single streaming pass.
func (db *Database) executeGroup(s *commands.GroupStatement) (QueryResult, error) {
	tf, err := db.catalog.GetTable(s.TableName)
	if err != nil {
		return QueryResult{}, err
	}

	ts, err := scan.NewTableScan(tf)
	if err != nil {
		return QueryResult{}, err
	}

	sorted, err := sort.NewSort(ts, s.Column, true, db.chunkCap)
	if err != nil {
		return QueryResult{}, err
	}

	group, err := aggregation.NewGroup(sorted, s.Column)
	if err != nil {
		return QueryResult{}, err
	}

	result, err := db.formatter.FormatRows(group)
	if err != nil {
		return QueryResult{}, err
	}
	result.Message = fmt.Sprintf("%d group(s) formed on %s", len(result.Rows), s.Column)
	return result, nil
}

func (db *Database) executeFilter(s *commands.FilterStatement) (QueryResult, error) {
	tf, err := db.catalog.GetTable(s.TableName)
	if err != nil {
		return QueryResult{}, err
	}

	ts, err := scan.NewTableScan(tf)
	if err != nil {
		return QueryResult{}, err
	}

	pred, err := query.NewPredicate(tf.Schema(), s.Column, s.Condition, value.Value(s.Value))
	if err != nil {
		return QueryResult{}, err
	}

	filter, err := query.NewFilter(pred, ts)
	if err != nil {
		return QueryResult{}, err
	}

	result, err := db.formatter.FormatRows(filter)
	if err != nil {
		return QueryResult{}, err
	}
	result.Message = fmt.Sprintf("%d row(s) matched %s %s %s", len(result.Rows), s.Column, s.Condition, s.Value)
	return result, nil
}

func (db *Database) executeJoin(s *commands.JoinStatement) (QueryResult, error) {
	left, err := db.catalog.GetTable(s.LeftTable)
	if err != nil {
		return QueryResult{}, err
	}
	right, err := db.catalog.GetTable(s.RightTable)
	if err != nil {
		return QueryResult{}, err
	}

	leftScan, err := scan.NewTableScan(left)
	if err != nil {
		return QueryResult{}, err
	}
	rightScan, err := scan.NewTableScan(right)
	if err != nil {
		return QueryResult{}, err
	}

	pred, err := join.NewJoinPredicate(left.Schema(), right.Schema(), s.LeftColumn, s.RightColumn, value.Equals)
	if err != nil {
		return QueryResult{}, err
	}

	joined, err := join.NewJoin(leftScan, rightScan, pred, db.chunkCap)
	if err != nil {
		return QueryResult{}, err
	}
	return db.formatter.FormatRows(joined)
}

func (db *Database) executeAggregate(s *commands.AggregateStatement) (QueryResult, error) {
	tf, err := db.catalog.GetTable(s.TableName)
	if err != nil {
		return QueryResult{}, err
	}

	ts, err := scan.NewTableScan(tf)
	if err != nil {
		return QueryResult{}, err
	}

	agg, err := aggregation.NewAggregate(ts, s.Column, s.Op)
	if err != nil {
		return QueryResult{}, err
	}

	result, err := db.formatter.FormatRows(agg)
	if err != nil {
		return QueryResult{}, err
	}
	if len(result.Rows) == 1 && len(result.Rows[0]) == 1 {
		result.Message = fmt.Sprintf("%s of %s = %s", s.Op, s.Column, result.Rows[0][0])
	}
	return result, nil
}
